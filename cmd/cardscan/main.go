// Command cardscan is a one-shot CLI: extract a card image or text file,
// report duplicates, optionally save, and run imports/exports without the
// HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/export"
	"github.com/joseph-ayodele/cardscan/internal/importer"
	"github.com/joseph-ayodele/cardscan/internal/ocr"
	"github.com/joseph-ayodele/cardscan/internal/pipeline"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

func main() {
	var (
		imagePath  = flag.String("image", "", "card image to OCR and classify")
		textPath   = flag.String("text", "", "file with already-recognized text to classify")
		save       = flag.Bool("save", false, "persist the extracted card even if duplicates exist")
		importCSV  = flag.String("import-csv", "", "CSV file to import")
		importJSON = flag.String("import-json", "", "JSON file to import")
		keepDupes  = flag.Bool("keep-duplicates", false, "do not skip duplicate rows on import")
		exportCSV  = flag.String("export-csv", "", "write all contacts to this CSV file")
		exportXLSX = flag.String("export-xlsx", "", "write all contacts to this XLSX file")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env")
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fatal(logger, "invalid configuration", err)
	}

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		fatal(logger, "open database", err)
	}
	defer repository.Close(db, logger)

	contacts := repository.NewContactRepository(db, cfg.Database.Driver, logger)

	switch {
	case *imagePath != "" || *textPath != "":
		extractor := ocr.NewExtractor(ocr.Config{
			Tesseract:           cfg.OCR.Tesseract,
			TesseractLang:       cfg.OCR.TesseractLang,
			TessdataDir:         cfg.OCR.TessdataDir,
			PSM:                 cfg.OCR.PSM,
			OEM:                 cfg.OCR.OEM,
			EnableTSVConfidence: cfg.OCR.EnableTSVConfidence,
		}, logger)
		proc := pipeline.NewProcessor(logger, extractor, contacts)

		var result pipeline.Result
		if *imagePath != "" {
			result, err = proc.ProcessImage(ctx, *imagePath)
		} else {
			var raw []byte
			raw, err = os.ReadFile(*textPath)
			if err == nil {
				result, err = proc.ProcessText(ctx, string(raw))
			}
		}
		if err != nil {
			fatal(logger, "extraction", err)
		}
		printJSON(result)

		if *save {
			contact, err := proc.SaveCard(ctx, result.Card)
			if err != nil {
				fatal(logger, "save contact", err)
			}
			fmt.Fprintf(os.Stderr, "saved contact %d\n", contact.ID)
		}

	case *importCSV != "":
		f, err := os.Open(*importCSV)
		if err != nil {
			fatal(logger, "open import file", err)
		}
		defer f.Close()
		result, err := importer.NewService(contacts, logger).ImportCSV(ctx, f, !*keepDupes)
		if err != nil {
			fatal(logger, "import csv", err)
		}
		printJSON(result)

	case *importJSON != "":
		f, err := os.Open(*importJSON)
		if err != nil {
			fatal(logger, "open import file", err)
		}
		defer f.Close()
		result, err := importer.NewService(contacts, logger).ImportJSON(ctx, f, !*keepDupes)
		if err != nil {
			fatal(logger, "import json", err)
		}
		printJSON(result)

	case *exportCSV != "":
		data, err := export.NewService(contacts, logger).ExportCSV(ctx)
		if err != nil {
			fatal(logger, "export csv", err)
		}
		if err := os.WriteFile(*exportCSV, data, 0o644); err != nil {
			fatal(logger, "write export file", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *exportCSV)

	case *exportXLSX != "":
		data, err := export.NewService(contacts, logger).ExportXLSX(ctx)
		if err != nil {
			fatal(logger, "export xlsx", err)
		}
		if err := os.WriteFile(*exportXLSX, data, 0o644); err != nil {
			fatal(logger, "write export file", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *exportXLSX)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
