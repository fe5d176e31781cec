package read

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// ChunkIterator reads a delimited file as a sequence of bounded-row frames.
// Chunks are strictly sequential: each chunk is fully read and returned
// before the next is touched. A read error aborts only the chunk it occurs
// in; the caller decides whether to keep iterating.
type ChunkIterator struct {
	conf   *Conf
	reader *csv.Reader
	names  []string

	buffer [][]string
	offset int
	done   bool
	err    error
}

// Chunks returns a chunk iterator over a delimited file. For files without a
// header line, column names come from the configured Spec.
func Chunks(r io.Reader, conf *Conf) (*ChunkIterator, error) {
	c := withDefaults(conf)

	it := &ChunkIterator{conf: c}
	if c.NoHeader {
		if c.Spec == nil {
			return nil, fmt.Errorf("chunked read of a headerless file needs a schema for column names")
		}
		it.names = c.Spec.Names()
		it.reader = newCSVReader(r, c, len(it.names))
		return it, nil
	}

	it.reader = newCSVReader(r, c, -1)
	header, err := it.reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	it.names = append([]string{}, header...)
	it.reader.FieldsPerRecord = len(it.names)
	return it, nil
}

// HasNext reports whether another chunk is available, reading ahead as
// needed.
func (it *ChunkIterator) HasNext() bool {
	it.fill()
	return len(it.buffer) > 0 || it.err != nil
}

// Next returns the next chunk as a string-typed frame and logs its
// statistics. A read error is returned for the chunk it interrupted;
// iteration may continue afterwards.
func (it *ChunkIterator) Next() (dataframe.DataFrame, error) {
	start := time.Now()
	it.fill()

	// Buffered rows are yielded before a pending read error, so a parse
	// failure never discards the rows read ahead of it.
	if len(it.buffer) == 0 {
		if it.err != nil {
			err := it.err
			it.err = nil
			it.observe(start, 0, "error", err)
			return dataframe.DataFrame{}, err
		}
		return dataframe.DataFrame{}, fmt.Errorf("no more chunks")
	}

	records := make([][]string, 0, len(it.buffer)+1)
	records = append(records, it.names)
	records = append(records, it.buffer...)

	df := dataframe.LoadRecords(records, it.conf.loadOptions()...)
	rows := len(it.buffer)
	it.buffer = nil
	if df.Err != nil {
		it.observe(start, rows, "error", df.Err)
		return dataframe.DataFrame{}, df.Err
	}

	it.observe(start, rows, "ok", nil)
	it.offset += rows
	return df, nil
}

// fill reads ahead up to one chunk of records.
func (it *ChunkIterator) fill() {
	if it.done || len(it.buffer) > 0 || it.err != nil {
		return
	}
	for len(it.buffer) < it.conf.ChunkSize {
		record, err := it.reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				it.done = true
				return
			}
			it.err = err
			return
		}
		it.buffer = append(it.buffer, append([]string{}, record...))
	}
}

// observe logs per-chunk statistics through the configured logger.
func (it *ChunkIterator) observe(start time.Time, rows int, status string, err error) {
	attrs := []any{
		slog.Int("offset", it.offset),
		slog.Int("rows", rows),
		slog.Int("columns", len(it.names)),
		slog.Duration("runtime", time.Since(start)),
		slog.String("status", status),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		it.conf.Logger.Error("chunk read", attrs...)
		return
	}
	it.conf.Logger.Info("chunk read", attrs...)
}
