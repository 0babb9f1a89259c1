package storage

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}
	return doc
}

func TestExtractMainImage(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "og:image prioritaire",
			html: `<html><head><meta property="og:image" content="https://cdn.example.com/plat.jpg"></head>
			<body><img src="/logo.png"></body></html>`,
			want: "https://cdn.example.com/plat.jpg",
		},
		{
			name: "image produit",
			html: `<html><body><img src="/logo.png" class="site-logo"><img src="/photos/tarte.jpg" class="product-img"></body></html>`,
			want: "/photos/tarte.jpg",
		},
		{
			name: "repli première image",
			html: `<html><body><img src="/only.jpg"></body></html>`,
			want: "/only.jpg",
		},
		{
			name: "aucune image",
			html: `<html><body><p>rien</p></body></html>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractMainImage(docFromHTML(t, tt.html)); got != tt.want {
				t.Errorf("ExtractMainImage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewImagePath_Extensions(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewImagePath(dir, "plat.JPG"); err != nil {
		t.Errorf("extension .JPG should be accepted: %v", err)
	}
	if _, err := NewImagePath(dir, "plat.gif"); err == nil {
		t.Error("extension .gif should be rejected")
	}
	if _, err := NewModelPath(dir, "plat.glb"); err != nil {
		t.Errorf("extension .glb should be accepted: %v", err)
	}
	if _, err := NewModelPath(dir, "plat.obj"); err == nil {
		t.Error("extension .obj should be rejected")
	}

	// deux appels ne donnent jamais le même chemin
	p1, _ := NewImagePath(dir, "a.jpg")
	p2, _ := NewImagePath(dir, "a.jpg")
	if p1 == p2 {
		t.Error("generated paths should be unique")
	}
}

func TestServedURLAndDiskPath(t *testing.T) {
	dir := t.TempDir()

	diskPath, err := NewImagePath(dir, "plat.jpg")
	if err != nil {
		t.Fatalf("NewImagePath: %v", err)
	}

	// c'est le chemin public qui est persisté et exposé, pas le chemin disque
	url := ServedURL(dir, diskPath)
	if !strings.HasPrefix(url, "/media/images/") {
		t.Errorf("ServedURL = %q, want prefix /media/images/", url)
	}
	if strings.Contains(url, dir) {
		t.Errorf("ServedURL = %q should not leak the disk path", url)
	}

	if got := DiskPath(dir, url); got != diskPath {
		t.Errorf("DiskPath(ServedURL(p)) = %q, want %q", got, diskPath)
	}

	// valeur hors /media (lien CDN du super admin) : rien à supprimer
	if got := DiskPath(dir, "https://cdn.example.com/modele.glb"); got != "" {
		t.Errorf("DiskPath(CDN) = %q, want empty", got)
	}
	if got := DiskPath(dir, ""); got != "" {
		t.Errorf("DiskPath(\"\") = %q, want empty", got)
	}
}
