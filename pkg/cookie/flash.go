package cookie

import (
	"encoding/json"
	"errors"
)

// SetFlash queues a JSON-encoded, encrypted one-time value for the next
// request.
func (j *Jar) SetFlash(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrFlashEncoding, err)
	}
	return j.SetEncrypted(flashPrefix+key, string(data))
}

// GetFlash reads and clears a flash value. A value flashed earlier in the
// same request is returned as well.
func (j *Jar) GetFlash(key string, dest any) error {
	name := flashPrefix + key

	plaintext, err := j.GetEncrypted(name)
	if err != nil {
		return err
	}
	j.Delete(name)

	if err := json.Unmarshal([]byte(plaintext), dest); err != nil {
		return errors.Join(ErrFlashEncoding, err)
	}
	return nil
}
