//go:build !windows

package retry

func isPlatformTransient(error) bool { return false }
