package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var modelExtensions = map[string]bool{
	".glb":  true,
	".usdz": true,
}

// NewImagePath valide l'extension et renvoie un chemin de fichier unique
// sous mediaPath. Le fichier n'est pas encore écrit.
func NewImagePath(mediaPath, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("extension d'image non supportée : %s", ext)
	}
	return newMediaPath(mediaPath, "images", ext)
}

// NewModelPath fait de même pour les modèles 3D (.glb, .usdz).
func NewModelPath(mediaPath, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !modelExtensions[ext] {
		return "", fmt.Errorf("extension de modèle 3D non supportée : %s", ext)
	}
	return newMediaPath(mediaPath, "models", ext)
}

func newMediaPath(mediaPath, kind, ext string) (string, error) {
	dir := filepath.Join(mediaPath, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("création du dossier média impossible : %w", err)
	}
	return filepath.Join(dir, uuid.NewString()+ext), nil
}

// ServedURL convertit un chemin disque sous mediaPath en chemin public tel
// que servi sur /media. C'est cette forme qui est persistée et exposée au
// client, jamais le chemin disque.
func ServedURL(mediaPath, diskPath string) string {
	rel, err := filepath.Rel(mediaPath, diskPath)
	if err != nil {
		return ""
	}
	return "/media/" + filepath.ToSlash(rel)
}

// DiskPath retrouve le chemin disque d'un média depuis son chemin public.
// Une valeur hors de /media (lien CDN posé par le super admin, ancien
// format) donne une chaîne vide : rien à supprimer sur disque.
func DiskPath(mediaPath, servedURL string) string {
	rel := strings.TrimPrefix(servedURL, "/media/")
	if rel == servedURL || rel == "" {
		return ""
	}
	return filepath.Join(mediaPath, filepath.FromSlash(rel))
}

// SaveUpload écrit un fichier multipart sur disque et renvoie son chemin.
func SaveUpload(file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("ouverture du fichier uploadé impossible : %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("création du fichier impossible : %w", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("écriture du fichier impossible : %w", err)
	}
	return nil
}

// Remove supprime un média, best effort : un fichier orphelin n'est pas
// bloquant, il sera nettoyé à la main.
func Remove(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
