package qrcode

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// Generator writes employee badge QR codes as PNG files.
type Generator struct {
	outputDir string
	size      int
}

func NewGenerator(outputDir string, size int) *Generator {
	if outputDir == "" {
		outputDir = "static/qr_codes"
	}
	if size <= 0 {
		size = 256
	}
	return &Generator{outputDir: outputDir, size: size}
}

// Generate encodes data into a PNG named after the employee identifier and
// returns the web-relative path stored on the employee record.
func (g *Generator) Generate(data, employeeID string) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create qr output dir: %w", err)
	}

	filename := fmt.Sprintf("qr_%s.png", employeeID)
	filePath := filepath.Join(g.outputDir, filename)

	if err := qrcode.WriteFile(data, qrcode.Medium, g.size, filePath); err != nil {
		return "", fmt.Errorf("write qr code: %w", err)
	}

	return filepath.ToSlash(filepath.Join(filepath.Base(g.outputDir), filename)), nil
}
