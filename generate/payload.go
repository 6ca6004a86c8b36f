package generate

const (
	labelProduct = "[PRODUCT IMAGE]"
	labelModel   = "[MODEL IMAGE]"
	labelScene   = "[SCENE IMAGE]"
)

// AssemblePayload interleaves the instruction text with the labeled
// reference images. Order is always instruction, product, model, scene;
// absent references are omitted outright, never null-padded. The backend
// resolves label association from adjacency plus the clause references
// compiled into the instruction itself.
func AssemblePayload(instruction string, refs References) []ContentItem {
	payload := []ContentItem{{Kind: ContentText, Text: instruction}}
	for _, entry := range []struct {
		label string
		ref   *ImageRef
	}{
		{labelProduct, refs.Product},
		{labelModel, refs.Model},
		{labelScene, refs.Scene},
	} {
		if entry.ref == nil {
			continue
		}
		payload = append(payload,
			ContentItem{Kind: ContentText, Text: entry.label},
			ContentItem{Kind: ContentImage, Image: entry.ref},
		)
	}
	return payload
}
