package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/chrisdamba/menuprofit/internal/cloudwriter"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ParquetOutput writes one row per menu item, either to a local file or to a cloud bucket.
type ParquetOutput struct {
	basePath           string
	folder             string
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	written            []string
}

func NewParquetOutput(basePath, folder string) *ParquetOutput {
	return &ParquetOutput{basePath: basePath, folder: folder}
}

func NewCloudParquetOutput(folder string, factory cloudwriter.CloudWriterFactory, bucket string) *ParquetOutput {
	return &ParquetOutput{folder: folder, cloudWriterFactory: factory, cloudBucketName: bucket}
}

func (p *ParquetOutput) WriteResult(ctx context.Context, report Report) error {
	fw, target, err := p.createFile(ctx, report)
	if err != nil {
		return err
	}

	pw, err := writer.NewParquetWriter(fw, new(itemRow), 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, item := range report.Result.Items {
		if err := pw.Write(newItemRow(item)); err != nil {
			_ = fw.Close()
			return fmt.Errorf("failed to write item %d: %w", item.ItemID, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", target, err)
	}
	p.written = append(p.written, target)
	return nil
}

func (p *ParquetOutput) createFile(ctx context.Context, report Report) (source.ParquetFile, string, error) {
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, report.fileName(".parquet"))
		cw, err := p.cloudWriterFactory.NewWriter(ctx, p.cloudBucketName, objectPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cw), objectPath, nil
	}

	filePath := report.localPath(p.basePath, p.folder, ".parquet")
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return nil, "", err
	}
	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, filePath, nil
}

func (p *ParquetOutput) Files() []string { return p.written }

func (p *ParquetOutput) Close() error { return nil }

// CloudParquetFile adapts a write-only CloudWriter to source.ParquetFile.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cw cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cw}
}

// Open and Create return the same object; the upload target is fixed when the writer is made.
func (c *CloudParquetFile) Open(string) (source.ParquetFile, error) { return c, nil }

func (c *CloudParquetFile) Create(string) (source.ParquetFile, error) { return c, nil }

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek whence %d not supported for cloud storage", whence)
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read([]byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(b []byte) (int, error) {
	n, err := c.cloudWriter.Write(b)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
