package web

import (
	"io/fs"
	"strings"
	"testing"
)

func TestStaticFiles(t *testing.T) {
	for _, name := range []string{"build/index.html", "build/app.js", "build/style.css"} {
		if _, err := fs.Stat(StaticFiles, name); err != nil {
			t.Errorf("embedded %s missing: %v", name, err)
		}
	}
}

func TestAppJS_NoLoadingForEmptyInput(t *testing.T) {
	data, err := fs.ReadFile(StaticFiles, "build/app.js")
	if err != nil {
		t.Fatalf("read app.js: %v", err)
	}
	src := string(data)

	guard := strings.Index(src, "if (address.trim() !== '')")
	loading := strings.Index(src, "show('loading', true)")
	if guard < 0 || loading < 0 {
		t.Fatalf("checkBalance guard or loading call not found")
	}
	if loading < guard {
		t.Error("loading indicator is shown before the empty-input check")
	}
}
