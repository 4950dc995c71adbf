// Package api serves the blocks of a spool directory of GSE waveform
// files over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/seisio/gsewave/gse"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Address      string
	ServeTimeout time.Duration
}

// Spool is a read-only view of a directory of GSE files.
type Spool struct {
	dir string
}

func NewSpool(dir string) *Spool {
	return &Spool{dir: dir}
}

func Register(spool *Spool, r *mux.Router) {
	r.Handle("/files", handleFiles{spool: spool})
	r.Handle("/files/{name}/blocks", handleBlocks{spool: spool})
	r.Handle("/files/{name}/blocks/{index:[0-9]+}", handleBlock{spool: spool})
}

// open resolves a spool file by bare name, refusing path traversal
func (s *Spool) open(name string) (*os.File, error) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.dir, name))
}

type blockSummary struct {
	Index      int     `json:"index"`
	Tag        string  `json:"tag"`
	Station    string  `json:"station"`
	Channel    string  `json:"channel"`
	StartTime  string  `json:"starttime"`
	SampleRate float64 `json:"samplerate"`
	NumSamples int     `json:"samples"`
	DataFormat string  `json:"dataformat"`
	Checksum   int32   `json:"checksum"`
}

func summarize(i int, b *gse.Block) blockSummary {
	return blockSummary{
		Index:      i,
		Tag:        b.Header.Tag,
		Station:    b.Header.Station,
		Channel:    b.Header.Channel,
		StartTime:  b.Header.StartTime.UTC().Format(time.RFC3339Nano),
		SampleRate: b.Header.SampleRate,
		NumSamples: b.Header.NumSamples,
		DataFormat: b.Header.DataFormat,
		Checksum:   b.Checksum,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("could not encode response")
	}
}

func httpError(w http.ResponseWriter, err error) {
	var ce *gse.ChecksumError
	switch {
	case os.IsNotExist(err):
		http.Error(w, "no such file", http.StatusNotFound)
	case errors.As(err, &ce):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

type handleFiles struct {
	spool *Spool
}

func (h handleFiles) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.spool.dir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	writeJSON(w, names)
}

type handleBlocks struct {
	spool *Spool
}

func (h handleBlocks) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, err := h.spool.open(mux.Vars(r)["name"])
	if err != nil {
		httpError(w, err)
		return
	}
	defer f.Close()

	gr := gse.NewReader(f)
	gr.HeadOnly = true

	summaries := []blockSummary{}
	for i := 0; ; i++ {
		blk, err := gr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			httpError(w, err)
			return
		}
		summaries = append(summaries, summarize(i, blk))
	}

	writeJSON(w, summaries)
}

type handleBlock struct {
	spool *Spool
}

func (h handleBlock) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "invalid block index", http.StatusBadRequest)
		return
	}

	f, err := h.spool.open(vars["name"])
	if err != nil {
		httpError(w, err)
		return
	}
	defer f.Close()

	gr := gse.NewReader(f)

	for i := 0; ; i++ {
		blk, err := gr.Next()
		if err == io.EOF {
			http.Error(w, "no such block", http.StatusNotFound)
			return
		}
		if err != nil {
			httpError(w, err)
			return
		}

		if i == index {
			writeJSON(w, struct {
				blockSummary
				Data []int32 `json:"data"`
			}{summarize(i, blk), blk.Data})
			return
		}
	}
}
