// Package lockfile reads the advisory provisioning lock that deployment
// scripts hold while creating a consumer workgroup.
//
// The lock is a directory containing two files: "owner" (the holder's
// identity) and "workgroup" (the resource being created). The directory's
// existence means the lock is held. rswatch only reads it, for display.
package lockfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// State is the observed state of the lock.
type State string

const (
	StateUnknown   State = "Unknown"
	StateLocked    State = "LOCKED"
	StateAvailable State = "Available"
)

// Lock marker file names.
const (
	OwnerFile     = "owner"
	WorkgroupFile = "workgroup"
)

// Status is one observation of the lock.
type Status struct {
	State     State     `json:"state"`
	Owner     string    `json:"owner,omitempty"`
	Workgroup string    `json:"workgroup,omitempty"`
	CheckedAt time.Time `json:"checkedAt,omitzero"`
}

// Held reports whether another process holds the lock.
func (s Status) Held() bool {
	return s.State == StateLocked
}

// Source provides the current lock status.
type Source interface {
	Status() Status
}

// Read inspects the lock directory. It never fails: a lock directory whose
// marker files cannot be read yields StateUnknown.
func Read(dir string) Status {
	now := time.Now()

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Status{State: StateAvailable, CheckedAt: now}
	}
	if err != nil || !info.IsDir() {
		return Status{State: StateUnknown, CheckedAt: now}
	}

	owner, err := readMarker(dir, OwnerFile)
	if err != nil {
		return Status{State: StateUnknown, CheckedAt: now}
	}
	workgroup, err := readMarker(dir, WorkgroupFile)
	if err != nil {
		return Status{State: StateUnknown, CheckedAt: now}
	}

	return Status{
		State:     StateLocked,
		Owner:     owner,
		Workgroup: workgroup,
		CheckedAt: now,
	}
}

func readMarker(dir, name string) (string, error) {
	// #nosec G304
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Reader reads the lock directory on every call.
type Reader struct {
	Dir string
}

// Status implements Source.
func (r Reader) Status() Status {
	return Read(r.Dir)
}

// Disabled is a Source for sessions without a lock directory.
type Disabled struct{}

// Status implements Source.
func (Disabled) Status() Status {
	return Status{State: StateUnknown}
}
