package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"resty.dev/v3"
)

// Importer récupère une photo de plat depuis une URL externe : soit une
// image directe, soit une page produit dont on extrait l'image principale.
type Importer struct {
	client *resty.Client
}

func NewImporter() *Importer {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetHeader("Accept", "text/html,application/xhtml+xml,image/*;q=0.9,*/*;q=0.8")

	return &Importer{client: client}
}

// ImportImage télécharge l'image désignée par rawURL dans mediaPath et
// renvoie le chemin du fichier écrit.
func (im *Importer) ImportImage(ctx context.Context, rawURL, mediaPath string) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return "", fmt.Errorf("URL invalide")
	}

	imageURL := rawURL
	if !looksLikeImage(pageURL.Path) {
		// page HTML : on extrait l'image principale
		imageURL, err = im.extractImageURL(ctx, pageURL)
		if err != nil {
			return "", err
		}
	}

	return im.downloadImage(ctx, imageURL, mediaPath)
}

func looksLikeImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// extractImageURL cherche d'abord l'og:image de la page, puis la première
// image marquée produit.
func (im *Importer) extractImageURL(ctx context.Context, pageURL *url.URL) (string, error) {
	resp, err := im.client.R().SetContext(ctx).Get(pageURL.String())
	if err != nil {
		return "", fmt.Errorf("chargement de la page impossible : %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chargement de la page impossible : HTTP %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return "", fmt.Errorf("analyse de la page impossible : %w", err)
	}

	candidate := ExtractMainImage(doc)
	if candidate == "" {
		return "", fmt.Errorf("aucune image trouvée sur la page")
	}

	resolved, err := pageURL.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("URL d'image invalide : %w", err)
	}
	return resolved.String(), nil
}

// ExtractMainImage renvoie l'URL (possiblement relative) de l'image
// principale d'un document, ou une chaîne vide.
func ExtractMainImage(doc *goquery.Document) string {
	// og:image est le signal le plus fiable
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && content != "" {
		return content
	}

	// sinon la première image marquée produit
	var candidate string
	doc.Find(`img[class*="product"], img[id*="product"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if src, ok := s.Attr("src"); ok && src != "" {
			candidate = src
			return false
		}
		return true
	})
	if candidate != "" {
		return candidate
	}

	// dernier recours : la première image de la page
	if src, ok := doc.Find("img").First().Attr("src"); ok {
		return src
	}
	return ""
}

func (im *Importer) downloadImage(ctx context.Context, imageURL, mediaPath string) (string, error) {
	resp, err := im.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("téléchargement de l'image impossible : %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("téléchargement de l'image impossible : HTTP %d", resp.StatusCode())
	}

	ext := strings.ToLower(filepath.Ext(imageURL))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if !imageExtensions[ext] {
		ext = ".jpg"
	}

	dir := filepath.Join(mediaPath, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("création du dossier média impossible : %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	if err := os.WriteFile(path, resp.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("écriture de l'image impossible : %w", err)
	}
	return path, nil
}
