//go:build !windows

package utils

func isWindowsReparsePoint(string) bool { return false }
