package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayImages(t *testing.T) {
	p := &Product{ID: "p1", Images: []string{"/img/a.png", "/img/b.png"}}
	assert.Equal(t, p.Images, p.DisplayImages())

	bare := &Product{ID: "p2"}
	assert.Equal(t, PlaceholderImages, bare.DisplayImages())
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductID: "p1", Name: "Laptop", Requested: 3, Available: 2}
	assert.Contains(t, err.Error(), "Laptop")
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "2")
}
