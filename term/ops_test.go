package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbstractInstantiateRoundTrip(t *testing.T) {
	x := &Local{ID: 1, Name: "x", Type: Const{Name: "Nat"}}
	y := &Local{ID: 2, Name: "y", Type: Const{Name: "Nat"}}

	// body = x applied to y
	body := &App{Fn: x, Arg: y}

	abstracted := Abstract([]*Local{x, y}, body)
	lam1, ok := abstracted.(*Lambda)
	assert.True(t, ok)
	assert.Equal(t, "x", lam1.Name)
	lam2, ok := lam1.Body.(*Lambda)
	assert.True(t, ok)
	assert.Equal(t, "y", lam2.Name)

	// applying back x, y should recover something Equals to the original body.
	applied := ApplyLambdas(abstracted, []Term{x, y})
	assert.True(t, Equals(body, applied))
}

func TestAbstractSingleLocal(t *testing.T) {
	x := &Local{ID: 1, Name: "x", Type: Const{Name: "T"}}
	abstracted := Abstract([]*Local{x}, x)
	lam, ok := abstracted.(*Lambda)
	assert.True(t, ok)
	assert.Equal(t, BVar{Idx: 0}, lam.Body)
}

func TestAbstractLeavesUnrelatedLocalsAlone(t *testing.T) {
	x := &Local{ID: 1, Name: "x", Type: Const{Name: "T"}}
	y := &Local{ID: 2, Name: "y", Type: Const{Name: "T"}}
	abstracted := Abstract([]*Local{x}, y)
	lam, ok := abstracted.(*Lambda)
	assert.True(t, ok)
	assert.Equal(t, y, lam.Body)
}

func TestAbstractPiWrapsInPi(t *testing.T) {
	x := &Local{ID: 1, Name: "x", Type: Const{Name: "T"}}
	abstracted := AbstractPi([]*Local{x}, Sort{Level: LZero{}})
	_, ok := abstracted.(*Pi)
	assert.True(t, ok)
}
