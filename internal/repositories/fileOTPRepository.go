package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"otpstore/internal/models"
)

const backendFile = "file"

type fileOTPRepository struct {
	path string
}

func NewFileOTPRepository(path string) OTPRepository {
	return &fileOTPRepository{path: path}
}

func (r *fileOTPRepository) Load(ctx context.Context) (otps []models.OTP, err error) {
	defer func(start time.Time) { observe(backendFile, "load", start, err) }(time.Now())

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return decodeOTPs(data)
}

// Save replaces the file contents by writing a sibling temp file and renaming it into place.
func (r *fileOTPRepository) Save(ctx context.Context, otps []models.OTP) (err error) {
	defer func(start time.Time) { observe(backendFile, "save", start, err) }(time.Now())

	data, err := encodeOTPs(otps)
	if err != nil {
		return fmt.Errorf("encode otps: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp.Name(), err)
	}
	return nil
}

func (r *fileOTPRepository) Ping(ctx context.Context) error {
	dir := filepath.Dir(r.path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
