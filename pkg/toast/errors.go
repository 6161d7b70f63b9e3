package toast

import "errors"

var ErrFlash = errors.New("toast.flash_failed")
