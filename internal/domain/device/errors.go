package device

import "errors"

var (
	ErrDeviceNotFound    = errors.New("device not found")
	ErrDuplicateAssetTag = errors.New("device with this asset tag already exists")
	ErrAlreadyCheckedOut = errors.New("device is already checked out")
	ErrAlreadyAvailable  = errors.New("device is already checked in")
)
