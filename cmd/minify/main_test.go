package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// TestMinifyFile_CSS checks that CSS is minified as expected
func TestMinifyFile_CSS(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.css")
	dst := filepath.Join(dir, "out", "style.css")
	writeFile(t, src, "\n\t\tbody {\n\t\t\tcolor: #fff;\n\t\t\tmargin: 0  ;\n\t\t}\n\t")

	ratio, err := minifyFile(newMinifier(), src, dst)
	if err != nil {
		t.Fatalf("minifyFile failed: %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "body{color:#fff;margin:0}" {
		t.Errorf("CSS minification mismatch: got %q", got)
	}
	if ratio <= 0 {
		t.Errorf("expected a positive reduction, got %.1f", ratio)
	}
}

// TestMinifyFile_JS checks that JavaScript is minified as expected
func TestMinifyFile_JS(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.js")
	dst := filepath.Join(dir, "app.min.js")
	writeFile(t, src, "\n\t\tfunction add(a, b) {\n\t\t\treturn a + b;\n\t\t}\n\t")

	if _, err := minifyFile(newMinifier(), src, dst); err != nil {
		t.Fatalf("minifyFile failed: %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "function add(e,t){return e+t}" {
		t.Errorf("JS minification mismatch: got %q", got)
	}
}

func TestMinifyFile_Unsupported(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "places.json")
	writeFile(t, src, "[]")
	if _, err := minifyFile(newMinifier(), src, filepath.Join(dir, "out.json")); err == nil {
		t.Error("expected an error for unsupported file type")
	}
}

func TestMinifyTree(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	writeFile(t, filepath.Join("templates", "index.html"), "<html>\n  <body>\n    <p> Kia   ora </p>\n  </body>\n</html>")
	writeFile(t, filepath.Join("static", "style.css"), "p {  color: red;  }")
	writeFile(t, filepath.Join("static", "logo.png"), "PNGDATA")

	m := newMinifier()
	for _, dir := range []string{"templates", "static"} {
		if err := minifyTree(m, dir, "dist"); err != nil {
			t.Fatalf("minifyTree(%s) failed: %v", dir, err)
		}
	}

	html, err := os.ReadFile(filepath.Join("dist", "templates", "index.html"))
	if err != nil {
		t.Fatalf("missing minified template: %v", err)
	}
	if !strings.Contains(string(html), "Kia ora") || strings.Contains(string(html), "\n") {
		t.Errorf("template not minified: %q", html)
	}
	css, _ := os.ReadFile(filepath.Join("dist", "static", "style.css"))
	if string(css) != "p{color:red}" {
		t.Errorf("CSS minification mismatch: got %q", css)
	}
	png, _ := os.ReadFile(filepath.Join("dist", "static", "logo.png"))
	if string(png) != "PNGDATA" {
		t.Errorf("non-minifiable asset should be copied unchanged, got %q", png)
	}
}
