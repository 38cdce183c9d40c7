package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/catalogstage/model"
	"github.com/tsawler/catalogstage/report"
)

// Default file names inside an output directory.
const (
	StagingFile = "staging.csv"
	ReviewFile  = "review.csv"
	ReportFile  = "report.json"
	HTMLFile    = "review.html"
	SQLiteFile  = "staging.db"
	ImageDir    = "images"
)

// Dataset is everything a run produced.
type Dataset struct {
	Records []model.ProductRecord
	Chunks  []*model.ProductChunk
	Slots   []model.ImageSlot
	Report  *report.Report
}

// Options selects what WriteDir produces.
type Options struct {
	CSV CSVConfig

	// StagingName overrides the staging CSV file name.
	StagingName string

	// Images writes slot images and thumbnails.
	Images bool

	// SQLite writes staging.db.
	SQLite bool
}

// DefaultOptions writes everything except the SQLite database.
func DefaultOptions() Options {
	return Options{CSV: DefaultCSVConfig(), Images: true}
}

// Paths lists the files WriteDir created. Unwritten outputs are empty.
type Paths struct {
	Staging string
	Review  string
	Report  string
	HTML    string
	Images  string
	SQLite  string
}

// WriteDir writes the dataset into dir, creating it if needed.
func WriteDir(ctx context.Context, dir string, ds Dataset, opts Options) (*Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	p := &Paths{}
	name := opts.StagingName
	if name == "" {
		name = StagingFile
	}

	var err error
	if p.Staging, err = writeFile(dir, name, func(f *os.File) error {
		return WriteStaging(ds.Records, f, opts.CSV)
	}); err != nil {
		return nil, err
	}
	if p.Review, err = writeFile(dir, ReviewFile, func(f *os.File) error {
		return WriteReview(ds.Chunks, f)
	}); err != nil {
		return nil, err
	}
	if ds.Report != nil {
		if p.Report, err = writeFile(dir, ReportFile, func(f *os.File) error {
			return WriteReport(ds.Report, f)
		}); err != nil {
			return nil, err
		}
	}

	htmlConfig := DefaultHTMLConfig()
	htmlConfig.Thumbnails = opts.Images
	if opts.Images {
		p.Images = filepath.Join(dir, ImageDir)
		if _, err := WriteImages(ds.Slots, p.Images); err != nil {
			return nil, err
		}
		if err := WriteThumbnails(ds.Slots, p.Images); err != nil {
			return nil, err
		}
	}
	if p.HTML, err = writeFile(dir, HTMLFile, func(f *os.File) error {
		return WriteReviewHTML(ds.Chunks, ds.Report, f, htmlConfig)
	}); err != nil {
		return nil, err
	}

	if opts.SQLite {
		p.SQLite = filepath.Join(dir, SQLiteFile)
		if err := WriteSQLite(ctx, p.SQLite, ds.Records, ds.Slots, ds.Report); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func writeFile(dir, name string, write func(*os.File) error) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
