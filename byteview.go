package cacheing

import "time"

// ByteView 一个不可变的字节数组视图
type ByteView struct {
	b []byte
	// 为零值表示不过期
	expire time.Time
}

func NewByteView(b []byte, expire time.Time) ByteView {
	return ByteView{
		b:      cloneBytes(b),
		expire: expire,
	}
}

func (v ByteView) Expire() time.Time {
	return v.expire
}

// Expired 在now时是否已经过期
func (v ByteView) Expired(now time.Time) bool {
	return !v.expire.IsZero() && !v.expire.After(now)
}

func (v ByteView) Len() int {
	return len(v.b)
}

// ByteSlice 返回数据的拷贝
func (v ByteView) ByteSlice() []byte {
	return cloneBytes(v.b)
}

func (v ByteView) String() string {
	return string(v.b)
}

func cloneBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
