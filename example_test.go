package normalizr_test

import (
	"fmt"

	normalizr "github.com/reoring/normalizr"
)

func ExampleNormalize() {
	user := normalizr.NewRecord("user", normalizr.F("name", normalizr.Scalar()))
	article := normalizr.NewRecord("article", normalizr.F("author", user))

	out, err := normalizr.Normalize(map[string]any{
		"id":     "123",
		"author": map[string]any{"id": "8472", "name": "Paul"},
	}, article)
	if err != nil {
		panic(err)
	}
	fmt.Println(out.Result)
	fmt.Println(out.Entities["article"]["123"]["author"])
	fmt.Println(out.Entities["user"]["8472"]["name"])
	// Output:
	// 123
	// 8472
	// Paul
}
