// Package testrailtest provides an in-process fake of the TestRail API.
package testrailtest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"gitlab.com/railsync.net/internal/domain"
)

const (
	Username = "qa@example.com"
	Password = "api-key"
)

// Server is a fake TestRail. Fields may be set before the first request.
type Server struct {
	*httptest.Server

	mu sync.Mutex
	// Runs by id
	Runs map[int]*domain.Run
	// Tests of each run
	Tests map[int][]domain.RemoteRunTest
	// PageSize > 0 makes get_tests answer with the paginated envelope
	PageSize int
	// Fail makes the named API call answer with the given status code
	Fail map[string]int

	Submitted   map[int][][]domain.ResultRecord
	Attachments map[int][]string
	NewRuns     []domain.NewRun
	Calls       []string

	nextResultID int
	nextRunID    int
}

// NewServer starts a fake TestRail accepting Username and Password
func NewServer() *Server {
	s := &Server{
		Runs:         make(map[int]*domain.Run),
		Tests:        make(map[int][]domain.RemoteRunTest),
		Fail:         make(map[string]int),
		Submitted:    make(map[int][][]domain.ResultRecord),
		Attachments:  make(map[int][]string),
		nextResultID: 1000,
		nextRunID:    500,
	}

	r := mux.NewRouter()
	api := r.Path("/index.php").Subrouter()
	api.Use(s.basicAuth)
	api.MatcherFunc(call("add_results_for_cases")).Methods(http.MethodPost).HandlerFunc(s.addResultsForCases)
	api.MatcherFunc(call("get_tests")).Methods(http.MethodGet).HandlerFunc(s.getTests)
	api.MatcherFunc(call("add_attachment_to_result")).Methods(http.MethodPost).HandlerFunc(s.addAttachment)
	api.MatcherFunc(call("get_run")).Methods(http.MethodGet).HandlerFunc(s.getRun)
	api.MatcherFunc(call("close_run")).Methods(http.MethodPost).HandlerFunc(s.closeRun)
	api.MatcherFunc(call("add_run")).Methods(http.MethodPost).HandlerFunc(s.addRun)

	s.Server = httptest.NewServer(r)
	return s
}

// call matches "index.php?/api/v2/<name>/..." requests
func call(name string) mux.MatcherFunc {
	return func(r *http.Request, _ *mux.RouteMatch) bool {
		return strings.HasPrefix(r.URL.RawQuery, "/api/v2/"+name+"/")
	}
}

// pathID returns the numeric id after the API call name
func pathID(r *http.Request) int {
	rest := strings.SplitN(r.URL.RawQuery, "/", 5)
	if len(rest) < 5 {
		return 0
	}
	idPart, _, _ := strings.Cut(rest[4], "&")
	id, _ := strconv.Atoi(idPart)
	return id
}

func queryInt(r *http.Request, key string) int {
	for _, kv := range strings.Split(r.URL.RawQuery, "&")[1:] {
		k, v, _ := strings.Cut(kv, "=")
		if k == key {
			i, _ := strconv.Atoi(v)
			return i
		}
	}
	return 0
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte(Username+":"+Password))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication failed"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CallCount returns how many requests were made to the named API call
func (s *Server) CallCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (s *Server) record(name string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, name)
	code, ok := s.Fail[name]
	return code, ok
}

func (s *Server) failed(w http.ResponseWriter, name string) bool {
	code, ok := s.record(name)
	if ok {
		writeJSON(w, code, map[string]string{"error": fmt.Sprintf("%s failed", name)})
	}
	return ok
}

func (s *Server) addResultsForCases(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, "add_results_for_cases") {
		return
	}
	runID := pathID(r)
	var req struct {
		Results []domain.ResultRecord `json:"results"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Submitted[runID] = append(s.Submitted[runID], req.Results)
	results := make([]domain.RemoteResult, 0, len(req.Results))
	for _, rec := range req.Results {
		testID := 0
		for _, test := range s.Tests[runID] {
			if test.CaseID == rec.CaseID {
				testID = test.ID
				break
			}
		}
		s.nextResultID++
		results = append(results, domain.RemoteResult{ID: s.nextResultID, TestID: testID, StatusID: rec.StatusID})
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) getTests(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, "get_tests") {
		return
	}
	runID := pathID(r)

	s.mu.Lock()
	tests := append([]domain.RemoteRunTest(nil), s.Tests[runID]...)
	pageSize := s.PageSize
	s.mu.Unlock()
	if tests == nil {
		tests = []domain.RemoteRunTest{}
	}

	if pageSize <= 0 {
		writeJSON(w, http.StatusOK, tests)
		return
	}

	offset := queryInt(r, "offset")
	end := offset + pageSize
	if end > len(tests) {
		end = len(tests)
	}
	if offset > end {
		offset = end
	}
	var next *string
	if end < len(tests) {
		link := fmt.Sprintf("/api/v2/get_tests/%d&limit=%d&offset=%d", runID, pageSize, end)
		next = &link
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"offset": offset,
		"limit":  pageSize,
		"size":   end - offset,
		"_links": map[string]interface{}{"next": next, "prev": nil},
		"tests":  tests[offset:end],
	})
}

func (s *Server) addAttachment(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, "add_attachment_to_result") {
		return
	}
	resultID := pathID(r)
	file, header, err := r.FormFile("attachment")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	defer file.Close()
	_, _ = io.Copy(io.Discard, file)

	s.mu.Lock()
	s.Attachments[resultID] = append(s.Attachments[resultID], header.Filename)
	n := len(s.Attachments[resultID])
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"attachment_id": resultID*100 + n})
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, "get_run") {
		return
	}
	s.mu.Lock()
	run, ok := s.Runs[pathID(r)]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Field :run_id is not a valid test run."})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) closeRun(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, "close_run") {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.Runs[pathID(r)]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Field :run_id is not a valid test run."})
		return
	}
	run.IsCompleted = true
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) addRun(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, "add_run") {
		return
	}
	var req domain.NewRun
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.NewRuns = append(s.NewRuns, req)
	s.nextRunID++
	run := &domain.Run{
		ID:          s.nextRunID,
		Name:        req.Name,
		Description: req.Description,
		SuiteID:     req.SuiteID,
		ProjectID:   pathID(r),
	}
	s.Runs[run.ID] = run
	tests := make([]domain.RemoteRunTest, 0, len(req.CaseIDs))
	for i, caseID := range req.CaseIDs {
		tests = append(tests, domain.RemoteRunTest{ID: run.ID*1000 + i, CaseID: caseID})
	}
	s.Tests[run.ID] = tests
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
