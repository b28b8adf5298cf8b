package filesystem

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/logging"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// Exists reports whether something is present at path without following a
// final symlink. Errors other than not-exist are returned.
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// DestinationTaken is Exists for a planned destination. A probe failure is
// classified against dst, so an over-long or malformed path reports
// PATH_INVALID.
func DestinationTaken(fsys types.FS, dst string) (bool, error) {
	taken, err := Exists(fsys, dst)
	if err != nil {
		return false, classify(err, dst, roleDestination)
	}
	return taken, nil
}

// IsDir reports whether path is an existing directory
func IsDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// CopyFile streams src into a newly created dst. dst must not exist: the file
// is opened with O_EXCL so a concurrent writer can't be clobbered. Permission
// bits of src are kept. A partially written dst is removed on failure.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return classify(err, src, roleSource)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrPathInvalid, "%s is a directory", src)
	}

	in, err := fsys.Open(src)
	if err != nil {
		return classify(err, src, roleSource)
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return classify(err, dst, roleDestination)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = fsys.Remove(dst)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		_ = fsys.Remove(dst)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to finish writing %s", dst)
	}
	return nil
}

// MoveFile renames src to dst, falling back to copy and remove when the two
// paths live on different devices.
func MoveFile(fsys types.FS, src, dst string) error {
	err := fsys.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		if stderrors.Is(err, fs.ErrNotExist) {
			if ok, _ := Exists(fsys, src); !ok {
				return classify(err, src, roleSource)
			}
		}
		return classify(err, dst, roleDestination)
	}

	logger := logging.GetLogger("filesystem")
	logger.Debug().Str("source", src).Str("destination", dst).Msg("cross-device move, copying instead")

	if err := CopyFile(fsys, src, dst); err != nil {
		return err
	}
	if err := fsys.Remove(src); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "copied to %s but failed to remove %s", dst, src)
	}
	return nil
}

// role tells classify which side of a transfer a path is on
type role int

const (
	roleSource role = iota
	roleDestination
)

// classify maps common OS errors to rebatch error codes. A missing
// destination means its parent directory does not exist, which is a bad
// path rather than a missing source.
func classify(err error, path string, r role) error {
	switch {
	case stderrors.Is(err, syscall.ENAMETOOLONG), stderrors.Is(err, syscall.EINVAL):
		return errors.Wrapf(err, errors.ErrPathInvalid, "%s is not a valid path", path).
			WithDetail("path", path)
	case stderrors.Is(err, fs.ErrNotExist) && r == roleSource:
		return errors.Wrapf(err, errors.ErrSourceMissing, "%s does not exist", path)
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrapf(err, errors.ErrPathInvalid, "directory of %s does not exist", path).
			WithDetail("path", path)
	case stderrors.Is(err, fs.ErrExist):
		return errors.Wrapf(err, errors.ErrDestinationExists, "%s already exists", path)
	case stderrors.Is(err, fs.ErrPermission):
		return errors.Wrapf(err, errors.ErrFileAccess, "permission denied for %s", path)
	default:
		return errors.Wrapf(err, errors.ErrFileAccess, "filesystem error on %s", path)
	}
}
