package signature_test

import (
	"fmt"

	"github.com/npillmayer/fontsig/internal/sfnttest"
	"github.com/npillmayer/fontsig/signature"
)

func ExampleOpenType_Validate() {
	font := sfnttest.Build(sfnttest.MagicOTTO, sfnttest.MinimalEntries()...)
	buf := append([]byte("garbage!"), font...)
	r, err := signature.OpenType{}.Validate(buf, 8)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(r)
	// Output: OpenType font at 8, size 44, confidence HIGH
}
