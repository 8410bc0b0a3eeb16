package keystore

import "io"

// NewServiceWithCreate returns a file service that opens its keystore file through create.
func NewServiceWithCreate(path string, params ScryptParams, create func(path string) (io.WriteCloser, error)) Service {
	return &service{path: path, params: params, create: create}
}

func CreateExclusive(path string) (io.WriteCloser, error) {
	return createExclusive(path)
}
