package consistenthash

import (
	"hash/crc32"
	"slices"
	"sort"
	"strconv"
)

// Hash 映射bytes到uint32，用于散列键
type Hash func(data []byte) uint32

// Ring 一致性哈希环，把key映射到节点，增加节点时只有少量key换节点
type Ring struct {
	hash Hash
	// 虚拟节点倍数
	replicas int
	// 哈希环，存的都是虚拟节点的hash，升序
	hashes []uint32
	// 虚拟节点hash到真实节点名称的映射
	nodes map[uint32]string
}

// New 创建一个一致性哈希环
func New(replicas int, fn Hash) *Ring {
	if replicas <= 0 {
		replicas = 1
	}
	r := &Ring{
		replicas: replicas,
		hash:     fn,
		nodes:    make(map[uint32]string),
	}
	if r.hash == nil {
		r.hash = crc32.ChecksumIEEE
	}
	return r
}

// Add 添加节点，虚拟节点hash冲突时后添加的覆盖先添加的
func (r *Ring) Add(nodes ...string) {
	for _, node := range nodes {
		for i := 0; i < r.replicas; i++ {
			hash := r.hash([]byte(strconv.Itoa(i) + node))
			if _, ok := r.nodes[hash]; !ok {
				r.hashes = append(r.hashes, hash)
			}
			r.nodes[hash] = node
		}
	}
	slices.Sort(r.hashes)
}

// Get 获取第一个哈希值大于等于键的节点，没有节点返回空字符串
func (r *Ring) Get(key string) string {
	if len(r.hashes) == 0 {
		return ""
	}
	hash := r.hash([]byte(key))
	idx := sort.Search(len(r.hashes), func(i int) bool {
		return r.hashes[i] >= hash
	})
	// 超过最大的hash时回到环的起点
	if idx == len(r.hashes) {
		idx = 0
	}
	return r.nodes[r.hashes[idx]]
}

// Len 虚拟节点个数
func (r *Ring) Len() int {
	return len(r.hashes)
}
