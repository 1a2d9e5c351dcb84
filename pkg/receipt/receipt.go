package receipt

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/dailyspends/dailyspends/pkg/user"
	"github.com/google/uuid"
)

var ErrReceiptNotFound = errors.New("receipt not found")
var ErrUnsupportedImage = errors.New("unsupported image, only JPEG and PNG are accepted")
var ErrReceiptTooLarge = errors.New("receipt image too large")
var ErrInvalidOwner = errors.New("invalid receipt owner")
var ErrInvalidRef = errors.New("invalid receipt reference")

// MaxSize is the largest accepted upload.
const MaxSize = 10 << 20

const refRoot = "bills"

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

// Receipt references one stored image, e.g. "bills/3f2a.../9b1c....jpg".
type Receipt struct {
	Ref         string
	Name        string
	ContentType string
}

// DetectImage sniffs the content type and returns it with the file extension.
func DetectImage(data []byte) (contentType string, ext string, err error) {
	contentType = http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: got %s", ErrUnsupportedImage, contentType)
	}
	return contentType, ext, nil
}

func userPrefix(uid string) (string, error) {
	if !user.ValidUid(uid) {
		return "", fmt.Errorf("%w: %q", ErrInvalidOwner, uid)
	}
	return refRoot + "/" + uid + "/", nil
}

func newRef(uid string, ext string) (string, error) {
	prefix, err := userPrefix(uid)
	if err != nil {
		return "", err
	}
	return prefix + uuid.NewString() + "." + ext, nil
}

// ResolveRef accepts a bare name or a full reference and returns the reference if it
// names an image directly under the prefix of uid. Anything else is reported as not found.
func ResolveRef(uid string, nameOrRef string) (string, error) {
	prefix, err := userPrefix(uid)
	if err != nil {
		return "", ErrReceiptNotFound
	}
	ref := nameOrRef
	if !strings.Contains(nameOrRef, "/") {
		ref = prefix + nameOrRef
	}
	if !strings.HasPrefix(ref, prefix) || path.Clean(ref) != ref {
		return "", ErrReceiptNotFound
	}
	name := strings.TrimPrefix(ref, prefix)
	if strings.Contains(name, "/") {
		return "", ErrReceiptNotFound
	}
	ext := path.Ext(name)
	if _, err := uuid.Parse(strings.TrimSuffix(name, ext)); err != nil {
		return "", ErrReceiptNotFound
	}
	if ext != ".jpg" && ext != ".png" {
		return "", ErrReceiptNotFound
	}
	return ref, nil
}

func contentTypeOf(ref string) string {
	if strings.HasSuffix(ref, ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
