package pdf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConvertHTMLPostsFormWithAssets(t *testing.T) {
	var gotFiles []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/chromium/convert/html" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "u" || pass != "p" {
			t.Errorf("expected basic auth")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.FormValue("paperWidth") != "8.5" {
			t.Errorf("expected letter paper width, got %q", r.FormValue("paperWidth"))
		}
		for _, fh := range r.MultipartForm.File["files"] {
			gotFiles = append(gotFiles, fh.Filename)
		}
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	client := NewGotenbergClient(srv.URL+"/", "u", "p")
	out, err := client.ConvertHTML(context.Background(), []byte("<p>x</p>"), map[string][]byte{"qr.png": []byte("png")}, AffidavitOpts())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if string(out) != "%PDF-1.7" {
		t.Fatalf("unexpected body %q", out)
	}
	if len(gotFiles) != 2 || gotFiles[0] != "index.html" || gotFiles[1] != "qr.png" {
		t.Fatalf("unexpected files %v", gotFiles)
	}
}

func TestMergePDFsNumbersParts(t *testing.T) {
	var gotFiles []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/pdfengines/merge" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = r.ParseMultipartForm(1 << 20)
		for _, fh := range r.MultipartForm.File["files"] {
			gotFiles = append(gotFiles, fh.Filename)
		}
		_, _ = w.Write([]byte("merged"))
	}))
	defer srv.Close()

	out, err := NewGotenbergClient(srv.URL, "", "").MergePDFs(context.Background(), [][]byte{[]byte("a"), []byte("b")})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if string(out) != "merged" || len(gotFiles) != 2 || gotFiles[0] != "001.pdf" || gotFiles[1] != "002.pdf" {
		t.Fatalf("unexpected merge result %q %v", out, gotFiles)
	}
}

func TestGotenbergErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewGotenbergClient(srv.URL, "", "").ConvertHTML(context.Background(), []byte("x"), nil, AffidavitOpts()); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestRendererMarkupRequiresGotenberg(t *testing.T) {
	r := NewRenderer(nil)
	_, err := r.Render(context.Background(), markupTemplate(), servedData(), Assets{})
	if err != ErrGotenbergUnavailable {
		t.Fatalf("expected ErrGotenbergUnavailable, got %v", err)
	}
	if _, err := r.Merge(context.Background(), [][]byte{[]byte("a"), []byte("b")}); err != ErrGotenbergUnavailable {
		t.Fatalf("expected merge to need gotenberg, got %v", err)
	}
	if out, err := r.Merge(context.Background(), [][]byte{[]byte("only")}); err != nil || string(out) != "only" {
		t.Fatalf("single part merge should pass through")
	}
}
