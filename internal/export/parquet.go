package export

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// ParquetSchema is the long form every dataset is flattened into.
var ParquetSchema = arrow.NewSchema([]arrow.Field{
	{Name: "dataset", Type: arrow.BinaryTypes.String},
	{Name: "title", Type: arrow.BinaryTypes.String},
	{Name: "x_label", Type: arrow.BinaryTypes.String},
	{Name: "x", Type: arrow.PrimitiveTypes.Float64},
	{Name: "series", Type: arrow.BinaryTypes.String},
	{Name: "y", Type: arrow.PrimitiveTypes.Float64},
}, nil)

func buildRecord(datasets []Dataset) arrow.Record {
	b := array.NewRecordBuilder(memory.DefaultAllocator, ParquetSchema)
	defer b.Release()

	name := b.Field(0).(*array.StringBuilder)
	title := b.Field(1).(*array.StringBuilder)
	xLabel := b.Field(2).(*array.StringBuilder)
	x := b.Field(3).(*array.Float64Builder)
	series := b.Field(4).(*array.StringBuilder)
	y := b.Field(5).(*array.Float64Builder)

	for _, dataset := range datasets {
		meta := dataset.Response.Meta
		for _, row := range dataset.Response.Table.Rows {
			for c := 1; c < len(row); c++ {
				name.Append(dataset.Name)
				title.Append(meta.Title)
				xLabel.Append(columnName(meta, 0))
				x.Append(row[0])
				series.Append(columnName(meta, c))
				y.Append(row[c])
			}
		}
	}
	return b.NewRecord()
}

// Parquet writes datasets to a new snappy compressed parquet file at path,
// replacing any existing file.
func Parquet(ctx context.Context, path string, datasets []Dataset) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	record := buildRecord(datasets)
	defer record.Release()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(ParquetSchema, file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	err = writer.Write(record)
	if err != nil {
		writer.Close()
		return fmt.Errorf("failed to write parquet record: %w", err)
	}
	return writer.Close()
}
