package utils

import "os"

// CreateDirIfNotExist makes dir (and any missing parents) unless it
// already exists.
func CreateDirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}

	return nil
}
