//go:build !linux && !darwin

package platform

func nanotime() int64 {
	return nanotimePortable()
}
