package ioimport

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/odysseus-imc/capexdb/pkg/tabular"
)

// ReadCSV reads a comma-separated table. The first record is the header.
// Short rows are allowed, missing cells read as blank.
func ReadCSV(r io.Reader) (*tabular.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return tabular.New(header, rows), nil
}

// ReadCSVFile opens and reads a CSV file.
func ReadCSVFile(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	res, err := ReadCSV(f)
	if err != nil {
		return nil, ReadError(path, err)
	}
	return res, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
