package wishheart

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticSource(t *testing.T) {
	src := StaticSource{"a", "b"}
	got, err := src.Wishes(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("Wishes = %v, %v", got, err)
	}
	got[0] = "changed"
	if src[0] != "a" {
		t.Error("Wishes returned the backing slice")
	}
	if _, err := (StaticSource{}).Wishes(context.Background()); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty source err = %v, want ErrEmptySource", err)
	}
}

func TestParseWishLines(t *testing.T) {
	got, err := ParseWishLines([]byte("# header\n新的一年\n\n  平安  \n#skip\n暴富\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"新的一年", "平安", "暴富"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if _, err := ParseWishLines([]byte("# only comments\n\n")); !errors.Is(err, ErrEmptySource) {
		t.Errorf("err = %v, want ErrEmptySource", err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishes.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FileSource{Path: path}.Wishes(context.Background())
	if err != nil || len(got) != 2 || got[1] != "two" {
		t.Errorf("Wishes = %v, %v", got, err)
	}
	if _, err := (FileSource{Path: path + ".missing"}).Wishes(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["平安", " ", "喜乐"]`))
	}))
	defer srv.Close()

	got, err := HTTPSource{URL: srv.URL, Client: srv.Client(), Focal: "新的一年"}.Wishes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"新的一年", "平安", "喜乐"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("wish %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHTTPSourceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status", http.StatusInternalServerError, `[]`},
		{"decode", http.StatusOK, `{"not": "a list"}`},
		{"empty", http.StatusOK, `[]`},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(tt.body))
		}))
		_, err := HTTPSource{URL: srv.URL}.Wishes(context.Background())
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		srv.Close()
	}
}

func TestHTTPSourceCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["a"]`))
	}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (HTTPSource{URL: srv.URL}).Wishes(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFallback(t *testing.T) {
	var seen error
	src := Fallback(FileSource{Path: filepath.Join(t.TempDir(), "none")}, FallbackWishes, func(err error) { seen = err })
	got, err := src.Wishes(context.Background())
	if err != nil {
		t.Fatalf("Fallback returned error %v", err)
	}
	if len(got) != len(FallbackWishes) || got[0] != FallbackWishes[0] {
		t.Errorf("got %v, want the fallback list", got)
	}
	if seen == nil {
		t.Error("onError not called")
	}

	got, _ = Fallback(StaticSource{}, nil, nil).Wishes(context.Background())
	if len(got) != 1 || got[0] != DefaultFocalText {
		t.Errorf("empty fallback = %v, want [%s]", got, DefaultFocalText)
	}

	got, _ = Fallback(StaticSource{"x"}, FallbackWishes, nil).Wishes(context.Background())
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("healthy source replaced: %v", got)
	}
}

func TestSourceFor(t *testing.T) {
	ctx := context.Background()

	got, err := SourceFor("", "", nil).Wishes(ctx)
	if err != nil || len(got) != len(DefaultWishes) || got[0] != DefaultFocalText {
		t.Errorf("default source = %d wishes, err %v", len(got), err)
	}

	var seen error
	got, err = SourceFor(filepath.Join(t.TempDir(), "missing.txt"), "", func(e error) { seen = e }).Wishes(ctx)
	if err != nil || len(got) != len(FallbackWishes) {
		t.Errorf("missing file = %d wishes, err %v", len(got), err)
	}
	if seen == nil {
		t.Error("onError not called for a missing file")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["a","b"]`))
	}))
	defer srv.Close()
	got, err = SourceFor("ignored.txt", srv.URL, nil).Wishes(ctx)
	if err != nil || len(got) != 3 || got[0] != DefaultFocalText || got[2] != "b" {
		t.Errorf("url source = %v, err %v", got, err)
	}
}
