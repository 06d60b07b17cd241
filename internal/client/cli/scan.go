package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agroscanai/agroscan-cli/internal/client/models"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Scan uploads the image at path for classification and prints the result.
func (a *App) Scan(ctx context.Context, path string) error {
	data, err := readFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	a.scans.Select(filepath.Base(path), data)

	rec, err := a.scans.Submit(ctx)
	if err != nil {
		a.showAlert()
		return err
	}

	printlnFn(fmt.Sprintf("Prediction: %s (%.1f%% confidence)", rec.Prediction, rec.Confidence*100))
	if rec.Recommendation != "" {
		printlnFn("Recommendation:", rec.Recommendation)
	}
	a.showAlert()
	return nil
}

// History refreshes the scan history from the server and prints it, newest
// first.
func (a *App) History(ctx context.Context) error {
	records := a.scans.FetchHistory(ctx, a.session.Current().UserEmail)

	if len(records) == 0 {
		printlnFn("No scans yet.")
		return nil
	}

	for _, r := range records {
		printlnFn(fmt.Sprintf("%s | %s | %s (%.1f%%) | %s",
			r.Timestamp, r.Filename, r.Prediction, r.Confidence*100, r.Recommendation))
	}
	return nil
}

// Categories lists the disease categories the classifier recognizes.
func (a *App) Categories() error {
	printlnFn("Recognizable categories:")
	for _, c := range models.DiseaseCategories {
		printlnFn(" -", c)
	}
	return nil
}
