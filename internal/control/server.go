// Package control serves a small web page and HTTP API for changing the pattern of a running executor, next to
// the Prometheus metrics.
package control

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/callebjorkell/rgbled/internal/config"
	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/callebjorkell/rgbled/internal/metrics"
	"github.com/callebjorkell/rgbled/internal/pattern"
	log "github.com/sirupsen/logrus"
)

// Executor is the part of *pattern.Executor the server drives.
type Executor interface {
	SetPattern(e pattern.Effect) error
	Status() pattern.Status
}

type Server struct {
	x      Executor
	server *http.Server
}

func NewServer(addr string, x Executor) *Server {
	s := &Server{x: x}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", patternForm)
	mux.HandleFunc("/pattern", s.patternReader)
	mux.HandleFunc("/status", s.status)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// Listen blocks until the server is closed.
func (s *Server) Listen() error {
	log.Infof("Starting control server on %v", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	log.Debug("Closing control server...")
	return s.server.Shutdown(ctx)
}

const form = `
<html>
<body style="font-family:sans-serif; font-size:12pt; background-color: #121212; color: #eee;">
<br><br><br>
<center>
<h1>rgbled</h1>
<br>
<form action="/pattern" method="post" autocomplete="off" novalidate>
<label for="type">Pattern</label>
<select name="type">
<option>full</option><option>blink</option><option>blink-twice</option>
<option>blink-between</option><option>breathe</option><option>breathe-between</option>
</select>
<br><br>
<label for="colour">Colour</label>
<input type="text" name="colour" value="white" size="10"/>
<label for="secondary">Secondary</label>
<input type="text" name="secondary" value="off" size="10"/>
<label for="duration">Duration</label>
<input type="text" name="duration" value="1s" size="6"/>
<br><br>
<input type="submit" value="Play"/>
</form>
</center>
</body>
</html>
`

func patternForm(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	io.WriteString(w, form)
}

func (s *Server) patternReader(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := req.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	p := config.Pattern{
		Type:      req.Form.Get("type"),
		Colour:    req.Form.Get("colour"),
		Secondary: req.Form.Get("secondary"),
	}
	if d := req.Form.Get("duration"); d != "" {
		var err error
		if p.Duration, err = time.ParseDuration(d); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	e, err := p.Effect()
	if err == nil {
		err = s.x.SetPattern(e)
	}
	if errors.Is(err, led.ErrValidation) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Infof("Pattern set to %v over HTTP", e)
	http.Redirect(w, req, "/status", http.StatusSeeOther)
}

type statusResponse struct {
	State       string     `json:"state"`
	Pattern     string     `json:"pattern"`
	Cycles      uint64     `json:"cycles"`
	LastCycleAt *time.Time `json:"lastCycleAt,omitempty"`
	LastError   string     `json:"lastError,omitempty"`
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	st := s.x.Status()
	resp := statusResponse{
		State:     st.State.String(),
		Pattern:   st.Effect.String(),
		Cycles:    st.Cycles,
		LastError: st.LastError,
	}
	if !st.LastCycleAt.IsZero() {
		resp.LastCycleAt = &st.LastCycleAt
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warnf("Unable to write status: %v", err)
	}
}
