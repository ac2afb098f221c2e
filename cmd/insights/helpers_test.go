package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command in-process with fresh flag values.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	err := execute(args, &stdout, &stderr)
	return stdout.String(), err
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// requestLog records the request URIs a fake backend received.
type requestLog struct {
	mu   sync.Mutex
	uris []string
}

func (l *requestLog) add(uri string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.uris = append(l.uris, uri)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.uris...)
}

// newBackend serves canned responses for every endpoint and records request URIs.
func newBackend(t *testing.T) (*httptest.Server, *requestLog) {
	t.Helper()
	seen := &requestLog{}
	mux := http.NewServeMux()

	respond := func(body []byte) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			seen.add(r.RequestURI)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
		}
	}

	mux.HandleFunc("/market_insights", respond(fixture(t, "market_insights.json")))
	mux.HandleFunc("/market_insights/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/market_insights/Unknown" {
			seen.add(r.RequestURI)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Role not found"}`))
			return
		}
		respond(fixture(t, "role_insights.json"))(w, r)
	})
	mux.HandleFunc("/roles", respond([]byte(`["Data Analyst","Data Scientist"]`)))
	mux.HandleFunc("/job_roles_distribution", respond([]byte(`[{"cmo_role_match":"Data Analyst","count":25},{"cmo_role_match":"Data Scientist","count":75}]`)))
	mux.HandleFunc("/similar_jobs/", respond([]byte(`[{"job_title":"Data Engineer II","similarity_score":0.61,"cmo_role_match":"Data Engineer"}]`)))
	mux.HandleFunc("/analyze_resume", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, `{"detail":"bad form"}`, http.StatusBadRequest)
			return
		}
		if r.FormValue("limit") == "" {
			http.Error(w, `{"detail":"limit missing"}`, http.StatusBadRequest)
			return
		}
		respond(fixture(t, "analysis_result.json"))(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, seen
}
