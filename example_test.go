package bytestream_test

import (
	"fmt"

	"github.com/rawbytedev/bytestream"
	"github.com/rawbytedev/bytestream/pkg/store"
	"github.com/rawbytedev/bytestream/pkg/text"
)

func ExampleWriter() {
	w, _ := bytestream.NewWriter(bytestream.Options{InitialSize: 2})
	_ = w.WriteInt32(108971523)
	_ = w.WriteBytes([]byte{1, 2, 3, 4}, true)
	fmt.Println(w.Offset(), w.Len())

	r, _ := bytestream.NewReader(w.Bytes())
	v, _ := r.ReadInt32()
	b, _ := r.ReadBytesPrefixed()
	fmt.Println(v, b)
	// Output:
	// 10 16
	// 108971523 [1 2 3 4]
}

func ExampleTryWrite() {
	w, _ := bytestream.NewWriterAt(make([]byte, 32), 28, true)
	fmt.Println(bytestream.TryWrite(w, int32(1)), w.Offset())
	fmt.Println(bytestream.TryWrite(w, int32(2)), w.Offset())
	// Output:
	// true 32
	// false 32
}

func ExampleStream() {
	type point struct{ X, Y float32 }

	codec := func(s *bytestream.Stream, p *point, name *string) error {
		if err := bytestream.Serialize(s, p); err != nil {
			return err
		}
		return s.SerializeString(name, text.UTF8)
	}

	var s bytestream.Stream
	_ = s.ResetWrite()
	p, name := point{1.5, -2}, "origin"
	_ = codec(&s, &p, &name)

	_ = s.ResetRead()
	var q point
	var got string
	_ = codec(&s, &q, &got)
	fmt.Println(q, got)
	// Output: {1.5 -2} origin
}

func ExampleNewWriterStore() {
	raw, _ := store.NewRaw(store.DefaultAllocator(), 64)
	defer raw.Free()

	w, _ := bytestream.NewWriterStore(raw, false)
	_ = w.WriteUTF16("手機瀏覽", true)
	fmt.Println(w.Offset())
	// Output: 10
}
