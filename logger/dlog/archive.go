package dlog

import (
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

// Archiver moves the previous day's log files into a dated directory.
// Writers spill into their buffer files while a run is in progress.
type Archiver struct {
	processing atomic.Bool
}

func (a *Archiver) process() {
	Info("Started log archive")
	a.processing.Store(true)
	defer a.processing.Store(false)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	archiveDir := "logs/" + yesterday

	base := archiveDir
	counter := 1
	err := os.Mkdir(archiveDir, 0755)
	for os.IsExist(err) {
		archiveDir = base + "-" + strconv.Itoa(counter)
		counter++
		err = os.Mkdir(archiveDir, 0755)
	}
	if err != nil {
		Error("Failed to create archive directory", "dir", archiveDir, "error", err)
		return
	}

	dir, err := os.ReadDir("logs")
	if err != nil {
		Error("Failed to read log directory", "error", err)
		return
	}

	for _, entry := range dir {
		if !entry.Type().IsRegular() {
			continue
		}
		written, err := archiveFile(entry.Name(), archiveDir)
		if err != nil {
			Error("Failed to archive log", "fileName", entry.Name(), "error", err)
			return
		}
		Info("Archived log", "fileName", entry.Name(), "dir", archiveDir, "written", written)
	}
}

func archiveFile(name, archiveDir string) (int64, error) {
	old, err := os.OpenFile("logs/"+name, os.O_RDONLY, 0600)
	if err != nil {
		return 0, err
	}
	defer old.Close()

	archived, err := os.OpenFile(archiveDir+"/"+name, os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return 0, err
	}
	defer archived.Close()

	written, err := io.Copy(archived, old)
	if err != nil {
		return written, err
	}
	return written, os.Truncate("logs/"+name, 0)
}

// BufferedFile is an io.Writer over a log file that redirects writes
// into BufferFile while the Archiver owns the main file, then replays
// the buffer on the first write afterwards.
type BufferedFile struct {
	Archiver   *Archiver
	File       *os.File
	BufferFile *os.File
	buffered   atomic.Bool
}

func (b *BufferedFile) Write(p []byte) (n int, err error) {
	if b.Archiver.processing.Load() {
		b.buffered.Store(true)
		if _, err := b.BufferFile.Write(p); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	if b.buffered.Swap(false) {
		if err := b.replay(); err != nil {
			return 0, err
		}
	}
	return b.File.Write(p)
}

func (b *BufferedFile) replay() error {
	if _, err := b.BufferFile.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := io.Copy(b.File, b.BufferFile); err != nil {
		return err
	}
	if err := b.BufferFile.Truncate(0); err != nil {
		return err
	}
	_, err := b.BufferFile.Seek(0, io.SeekStart)
	return err
}
