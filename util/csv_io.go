package util

import (
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
)

type CsvReaderCloser struct {
	src io.Closer
	*csv.Reader
}

func (r *CsvReaderCloser) Close() (err error) {
	tmp := r.src
	r.Reader = nil
	r.src = nil
	if tmp != nil {
		err = tmp.Close()
	}
	return
}

func NewCsvReaderCloser(rc io.ReadCloser) *CsvReaderCloser {
	return &CsvReaderCloser{
		src:    rc,
		Reader: csv.NewReader(rc),
	}
}

func OpenReadCsvFile(filePath string) (crc *CsvReaderCloser, err error) {
	rc, err := OpenReadFile(filePath)
	if err != nil {
		return
	}
	return NewCsvReaderCloser(rc), nil
}

// Process 1 record (or the error encountered when reading a record,
// including eof).
type RecordProcessorFn func(source string, record []string,
	recordNum int, err error) error

// If fn returns non-nil, ReadCsvToFn stops reading and returns that
// error (except for io.EOF, which is converted to nil before returning).
func ReadCsvToFn(r *CsvReaderCloser, source string, fn RecordProcessorFn) (
	numRecords int, err error) {
	var record []string
	for {
		record, err = r.Read()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			glog.Warningf("Error reading record %d from %s\nError: %s",
				numRecords+1, source, err)
		}
		err = fn(source, record, numRecords, err)
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return
		}
		numRecords++
	}
}

func ReadCsvFileToFn(filePath string, fn RecordProcessorFn) (
	numRecords int, err error) {
	crc, err := OpenReadCsvFile(filePath)
	if err != nil {
		glog.Warningf("Unable to open %s\nError: %s", filePath, err)
		return
	}
	defer func() {
		err2 := crc.Close()
		if err == nil {
			err = err2
		}
	}()
	crc.Comment = '#'
	return ReadCsvToFn(crc, filePath, fn)
}

type CsvWriteCloser struct {
	fwc *os.File
	gzw *gzip.Writer
	cw  *csv.Writer
}

func NewCsvWriteCloser(fwc *os.File, compress bool) *CsvWriteCloser {
	r := &CsvWriteCloser{fwc: fwc}
	if compress {
		r.gzw = gzip.NewWriter(fwc)
		r.cw = csv.NewWriter(r.gzw)
	} else {
		r.cw = csv.NewWriter(fwc)
	}
	return r
}

// Opens filePath for appending csv records, compressing if the name ends
// in ".gz". If delExisting is true any existing file is truncated first.
func OpenCsvWriteCloser(
	filePath string, delExisting bool, perm os.FileMode) (
	cwc *CsvWriteCloser, isNew bool, err error) {
	isNew = delExisting || !Exists(filePath)
	flag := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if delExisting {
		flag = flag | os.O_TRUNC
	}
	fwc, err := os.OpenFile(filePath, flag, perm)
	if err != nil {
		return nil, false, err
	}
	glog.V(1).Infof("Opened csv file for appending: %s", filePath)
	compress := strings.HasSuffix(filePath, ".gz")
	return NewCsvWriteCloser(fwc, compress), isNew, nil
}

func (r *CsvWriteCloser) Write(record []string) error {
	return r.cw.Write(record)
}

func (r *CsvWriteCloser) Flush() error {
	r.cw.Flush()
	if err := r.cw.Error(); err != nil {
		return err
	}
	if r.gzw != nil {
		return r.gzw.Flush()
	}
	return nil
}

func (r *CsvWriteCloser) Close() error {
	r.cw.Flush()
	err := r.cw.Error()
	if r.gzw != nil {
		if err2 := r.gzw.Close(); err == nil {
			err = err2
		}
	}
	if err2 := r.fwc.Close(); err == nil {
		err = err2
	}
	return err
}
