// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio_test

import (
	"context"
	"fmt"

	"code.hybscloud.com/bodyio"
	"code.hybscloud.com/kont"
)

func ExampleNew() {
	w, r := bodyio.New(10)
	go func() {
		defer w.Close()
		fmt.Fprint(w, "Hello, ")
		fmt.Fprint(w, "world")
	}()

	for f, err := range r.Frames(context.Background()) {
		if err != nil {
			panic(err)
		}
		fmt.Printf("%q\n", f.Data())
	}
	// Output:
	// "Hello, "
	// "world"
}

func ExampleRun() {
	producer := bodyio.PutAll([][]byte{[]byte("a"), []byte("b")}, kont.Pure(struct{}{}))
	consumer := bodyio.Drain(0, func(n int, f bodyio.Frame) int { return n + f.Len() })

	_, total := bodyio.Run[struct{}, int](1, producer, consumer)
	n, _ := total.GetRight()
	fmt.Println(n)
	// Output: 2
}
