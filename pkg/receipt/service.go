package receipt

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/dailyspends/dailyspends/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Upload(ctx context.Context, data []byte) (Receipt, error)
	List(ctx context.Context) ([]Receipt, error)
	Open(ctx context.Context, nameOrRef string) (io.ReadCloser, Receipt, error)
}

type ServiceImpl struct {
	store Store
}

func NewService(store Store) *ServiceImpl {
	return &ServiceImpl{store: store}
}

// Upload stores a JPEG or PNG image under the current user's prefix.
func (s *ServiceImpl) Upload(ctx context.Context, data []byte) (Receipt, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if len(data) > MaxSize {
		return Receipt{}, fmt.Errorf("%w: %d bytes", ErrReceiptTooLarge, len(data))
	}
	contentType, ext, err := DetectImage(data)
	if err != nil {
		return Receipt{}, err
	}

	ref, err := newRef(currentUser.Uid, ext)
	if err != nil {
		return Receipt{}, err
	}
	if err := s.store.Put(ctx, ref, contentType, data); err != nil {
		return Receipt{}, err
	}
	log.Debugf("user %d uploaded receipt %s", currentUser.Id, ref)
	return toReceipt(ref), nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Receipt, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	prefix, err := userPrefix(currentUser.Uid)
	if err != nil {
		return nil, err
	}
	refs, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	receipts := make([]Receipt, 0, len(refs))
	for _, ref := range refs {
		// stores list by string prefix, nested objects are not the user's receipts
		if _, err := ResolveRef(currentUser.Uid, ref); err != nil {
			log.Tracef("skipping %s while listing receipts of user %d", ref, currentUser.Id)
			continue
		}
		receipts = append(receipts, toReceipt(ref))
	}
	return receipts, nil
}

// Open returns the image of a receipt owned by the current user. References of other
// users are reported as not found.
func (s *ServiceImpl) Open(ctx context.Context, nameOrRef string) (io.ReadCloser, Receipt, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, Receipt{}, fmt.Errorf("failed to get current user: %w", err)
	}
	ref, err := ResolveRef(currentUser.Uid, nameOrRef)
	if err != nil {
		return nil, Receipt{}, err
	}
	body, err := s.store.Get(ctx, ref)
	if err != nil {
		return nil, Receipt{}, err
	}
	return body, toReceipt(ref), nil
}

func toReceipt(ref string) Receipt {
	return Receipt{Ref: ref, Name: path.Base(ref), ContentType: contentTypeOf(ref)}
}
