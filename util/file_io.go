package util

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
)

type gzipReadCloser struct {
	src io.Closer
	*gzip.Reader
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if err2 := g.src.Close(); err == nil {
		err = err2
	}
	return err
}

// Opens filePath for reading, transparently decompressing if the name
// ends in ".gz".
func OpenReadFile(filePath string) (rc io.ReadCloser, err error) {
	f, err := os.Open(filePath)
	if err != nil {
		return
	}
	if !strings.HasSuffix(filePath, ".gz") {
		glog.V(1).Infof("Opened file for reading: %s", filePath)
		return f, nil
	}
	gr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return
	}
	rc = &gzipReadCloser{f, gr}
	glog.V(1).Infof("Opened compressed file for reading: %s", filePath)
	return
}

func Exists(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && fi != nil
}

func IsFile(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && fi != nil && fi.Mode().IsRegular()
}
