package models

// GalleryImage is one picture in the ordered gallery. Order values
// across the collection are meant to be a permutation of 1..N.
type GalleryImage struct {
	ID    int64  `json:"id"`
	Src   string `json:"src" validate:"required"`
	Alt   string `json:"alt" validate:"required"`
	Order int    `json:"order"`
}

// GalleryImagePatch is a partial update of src and alt. Order is only
// changed through reorder.
type GalleryImagePatch struct {
	Src *string `json:"src"`
	Alt *string `json:"alt"`
}

// Apply merges the non-empty fields of p over img.
func (p GalleryImagePatch) Apply(img *GalleryImage) {
	mergeString(&img.Src, p.Src)
	mergeString(&img.Alt, p.Alt)
}
