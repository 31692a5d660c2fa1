package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("rgbled", "Plays lighting patterns on an RGB LED")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configFile = app.Flag("config", "Configuration file.").Short('c').Default("config.yaml").String()

	run = app.Command("run", "Play the configured pattern, reloading it when the config file changes")

	show          = app.Command("show", "Play a single pattern until interrupted")
	showType      = show.Arg("type", "Pattern type: full, blink, blink-twice, blink-between, breathe or breathe-between.").Required().String()
	showColour    = show.Flag("colour", "Colour name or hex value.").Default("white").String()
	showSecondary = show.Flag("secondary", "Second colour of the two colour patterns.").Default("off").String()
	showDuration  = show.Flag("duration", "Duration of one cycle.").Default("1s").Duration()

	cycle = app.Command("cycle", "Blink red and then breathe green, five seconds each")

	version = app.Command("version", "Show current version.")
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s %s\x1b[0m\n", levelColor, entry.Time.Format(time.StampMilli), entry.Message)), nil
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&colorFormatter{})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case run.FullCommand():
		err = runServer(*configFile)
	case show.FullCommand():
		err = showPattern(*configFile, *showType, *showColour, *showSecondary, *showDuration)
	case cycle.FullCommand():
		err = runCycle(*configFile)
	case version.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}

	if err != nil {
		log.Fatal(err)
	}
}
