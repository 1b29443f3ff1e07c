package main

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/buger/jsonparser"
	"github.com/gorilla/mux"
)

// statusBoard is what the device shows the outside world. The control loop
// writes it, the HTTP handlers read it.
type statusBoard struct {
	mu      sync.Mutex
	mode    string
	updated time.Time
	records map[string]*splitRecord
	alarm   *alarmState
}

func newStatusBoard() *statusBoard {
	return &statusBoard{mode: "boot", records: make(map[string]*splitRecord)}
}

func (sb *statusBoard) attach(alarm *alarmState, records ...*splitRecord) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.alarm = alarm
	for _, r := range records {
		sb.records[r.name] = r
	}
}

func (sb *statusBoard) setMode(mode string, now time.Time) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.mode = mode
	sb.updated = now
}

func (sb *statusBoard) record(name string) *splitRecord {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.records[name]
}

func (d *device) publish(mode string) {
	if d.rt.status == nil {
		return
	}
	d.rt.status.setMode(mode, d.rt.rtc.now())
}

type statusResponse struct {
	Response string     `json:"response"`
	Error    string     `json:"error,omitempty"`
	Mode     string     `json:"mode,omitempty"`
	Updated  string     `json:"updated,omitempty"`
	Alarm    *alarmView `json:"alarm,omitempty"`
	Splits   []splitOut `json:"splits,omitempty"`
}

type splitOut struct {
	Slot    int `json:"slot"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
	Millis  int `json:"millis"`
}

// statusService runs the HTTP side, tests swap in a recorder
type statusService interface {
	launch(handler *APIHandler, addr string)
	stop()
}

// APIHandler serves the status board behind basic auth
type APIHandler struct {
	rt     runtimeConfig
	board  *statusBoard
	secret string
	user   string
	realm  string
}

// NewHandler builds a handler; with no secret configured a random one is
// made up and logged
func NewHandler(rt runtimeConfig) *APIHandler {
	secret := rt.settings.GetString(sStatusSecret)
	if secret == "" {
		secret = generateSecret(rt)
		rt.logger.Printf("status secret is %s", secret)
	}
	return &APIHandler{
		rt:     rt,
		board:  rt.status,
		secret: secret,
		user:   rt.settings.GetString(sStatusUser),
		realm:  "tm8",
	}
}

func generateSecret(rt runtimeConfig) string {
	r := rand.New(rand.NewSource(rt.noise.noise()))
	return fmt.Sprintf("%04x", r.Intn(0xFFFF))
}

// BasicAuth - provide a middleware to authenticate users
func (m *APIHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAnswer(w http.ResponseWriter, code int, sr statusResponse) {
	output, _ := json.Marshal(sr)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(output)
}

func (m *APIHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	m.board.mu.Lock()
	sr := statusResponse{Response: "OK", Mode: m.board.mode}
	if !m.board.updated.IsZero() {
		sr.Updated = m.board.updated.Format(time.RFC3339)
	}
	alarm := m.board.alarm
	m.board.mu.Unlock()

	if alarm != nil {
		a := alarm.get()
		sr.Alarm = &a
	}
	writeAnswer(w, http.StatusOK, sr)
}

func (m *APIHandler) apiSplits(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rec := m.board.record(name)
	if rec == nil {
		writeAnswer(w, http.StatusNotFound, statusResponse{Response: "BAD", Error: "no record " + name})
		return
	}
	sr := statusResponse{Response: "OK", Splits: []splitOut{}}
	for i, v := range rec.snapshot() {
		sr.Splits = append(sr.Splits, splitOut{
			Slot:    i,
			Minutes: int(v / 100000),
			Seconds: int(v / 1000 % 100),
			Millis:  int(v % 1000),
		})
	}
	writeAnswer(w, http.StatusOK, sr)
}

// apiAlarm sets the alarm from a {"hour","minute","armed"} body
func (m *APIHandler) apiAlarm(w http.ResponseWriter, r *http.Request) {
	data, err := ioutil.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		writeAnswer(w, http.StatusBadRequest, statusResponse{Response: "BAD", Error: err.Error()})
		return
	}

	h, err1 := jsonparser.GetInt(data, "hour")
	mi, err2 := jsonparser.GetInt(data, "minute")
	armed, err3 := jsonparser.GetBoolean(data, "armed")
	if err1 != nil || err2 != nil || err3 != nil || h < 0 || mi < 0 ||
		validateTime(2000, 1, 1, int(h), int(mi)) != nil {
		writeAnswer(w, http.StatusBadRequest, statusResponse{Response: "BAD", Error: "hour, minute and armed required"})
		return
	}

	m.board.mu.Lock()
	alarm := m.board.alarm
	m.board.mu.Unlock()
	if alarm == nil {
		writeAnswer(w, http.StatusServiceUnavailable, statusResponse{Response: "BAD", Error: "no alarm"})
		return
	}
	alarm.set(int(h), int(mi), armed)
	a := alarm.get()
	m.rt.logger.Printf("alarm set remotely to %02d:%02d %v", a.Hour, a.Minute, a.Armed)
	writeAnswer(w, http.StatusOK, statusResponse{Response: "OK", Alarm: &a})
}

func (m *APIHandler) rootHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/status", http.StatusMovedPermanently)
}

func newStatusRouter(handler *APIHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(handler.BasicAuth)
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/splits/{name}", handler.apiSplits).Methods("GET")
	r.HandleFunc("/api/alarm", handler.apiAlarm).Methods("POST")
	r.HandleFunc("/", handler.rootHandler)
	return r
}

func startStatusService(rt runtimeConfig, svc statusService) {
	rt.logger = &ThreadLogger{name: "Status"}
	wg.Add(1)
	go runStatusService(rt, svc)
}

func runStatusService(rt runtimeConfig, svc statusService) {
	defer wg.Done()

	handler := NewHandler(rt)
	addr := rt.settings.GetString(sStatusAddr)
	svc.launch(handler, addr)
	rt.logger.Printf("status service on %s", addr)

	<-rt.comms.quit
	rt.logger.Println("quit from status service")
	svc.stop()
}
