package crypto

import "errors"

// ErrDecrypt reports that an encrypted payload failed authentication or that
// the decrypted bytes were not a valid serialized value. It almost always
// means a wrong room key or a corrupted store entry. Check with errors.Is.
var ErrDecrypt = errors.New("decrypt scene payload")
