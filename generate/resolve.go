package generate

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/brandlens/photogen/common/image"
)

// ReferenceInput is a reference image as supplied by the caller: either an
// already-hosted URL or inline base64 data.
type ReferenceInput struct {
	Url      string
	Data     string
	MimeType string
	Id       string
}

type ReferenceInputs struct {
	Product *ReferenceInput
	Model   *ReferenceInput
	Scene   *ReferenceInput
}

// ResolveReferences turns caller-supplied references into inline payload
// data. URL references are fetched in parallel; any failure fails the whole
// resolution since a silently dropped reference would change the compiled
// prompt's meaning.
func ResolveReferences(ctx context.Context, in ReferenceInputs) (References, error) {
	var refs References
	g, _ := errgroup.WithContext(ctx)
	for _, entry := range []struct {
		name string
		in   *ReferenceInput
		out  **ImageRef
	}{
		{"product", in.Product, &refs.Product},
		{"model", in.Model, &refs.Model},
		{"scene", in.Scene, &refs.Scene},
	} {
		if entry.in == nil {
			continue
		}
		name, input, out := entry.name, entry.in, entry.out
		g.Go(func() error {
			ref, err := resolveOne(input)
			if err != nil {
				return errors.Wrapf(err, "%s reference", name)
			}
			*out = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return References{}, err
	}
	return refs, nil
}

func resolveOne(in *ReferenceInput) (*ImageRef, error) {
	if strings.TrimSpace(in.Url) != "" {
		mimeType, data, err := image.GetImageFromUrl(in.Url)
		if err != nil {
			return nil, err
		}
		return &ImageRef{MimeType: mimeType, Data: data, Id: in.Id}, nil
	}
	if in.Data == "" {
		return nil, errors.New("reference has neither url nor inline data")
	}
	if err := image.ValidateBase64(in.Data); err != nil {
		return nil, err
	}
	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return &ImageRef{MimeType: mimeType, Data: in.Data, Id: in.Id}, nil
}
