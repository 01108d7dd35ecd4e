package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/safetruck/fleetsight/internal/cloudwriter"
	"github.com/safetruck/fleetsight/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ParquetOutput writes the cleaned trip set as a parquet file, either on
// local disk or streamed to cloud storage.
type ParquetOutput struct {
	basePath           string
	folder             string
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(cfg *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: cfg.OutputPath,
		folder:   cfg.OutputFolder,
	}

	if cfg.OutputDestination != "local" {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(cfg.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		p.cloudWriterFactory = factory
		p.cloudBucketName = cfg.CloudStorage.BucketName
	}

	return p, nil
}

func (p *ParquetOutput) newFile(name string) (source.ParquetFile, error) {
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, name)
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, err
		}
		return NewCloudParquetFile(cw), nil
	}

	dir := filepath.Join(p.basePath, p.folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return local.NewLocalFileWriter(filepath.Join(dir, name))
}

func (p *ParquetOutput) WriteTrips(trips []models.Trip) error {
	file, err := p.newFile("trips.parquet")
	if err != nil {
		return err
	}

	pw, err := writer.NewParquetWriter(file, new(models.Trip), 4)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	for _, trip := range trips {
		if err := pw.Write(trip); err != nil {
			pw.WriteStop()
			file.Close()
			return err
		}
	}

	if err := pw.WriteStop(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (p *ParquetOutput) Close() error { return nil }

// CloudParquetFile adapts a streaming CloudWriter to the ParquetFile
// interface. It is write-only: reads and seeks from the end are not
// meaningful against an in-flight cloud object.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cw cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cw}
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	// the object is implicitly created when writing starts
	return c, nil
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
