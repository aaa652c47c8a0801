// Package bhash provides the seedless 32-bit string hash and the path-hash
// mix function that PathIndex buckets on — named to avoid colliding with
// the standard library's hash package.
package bhash

import "encoding/binary"

// magic primes, straight out of xxh.c.
const (
	p1 uint32 = 0x9e3779b1
	p2 uint32 = 0x85ebca77
	p3 uint32 = 0xc2b2ae3d
	p4 uint32 = 0x27d4eb2f
	p5 uint32 = 0x165667b1
)

func rotl32(v uint32, n uint) uint32 {
	return (v << n) | (v >> (32 - n))
}

// Hash32 is a pure, seedless 32-bit hash of data — no per-process seed,
// so the same bytes always hash the same way across a dump/parse
// round-trip. Ported from xxh.c's xxHash, including its final byte loop
// reading one position past the buffer: the C source relies on the
// input being NUL-terminated there, so this treats the byte just past
// data as 0 to match it exactly.
func Hash32(data []byte) uint32 {
	n := len(data)
	i := 0
	var hash uint32

	if n >= 16 {
		p1v := p1
		acc := [4]uint32{p1v + p2, p2, 0, uint32(-int32(p1v))}
		lim := n - 16
		for i <= lim {
			acc[0] += binary.LittleEndian.Uint32(data[i:]) * p2
			acc[0] = rotl32(acc[0], 13) * p1
			i += 4
			acc[1] += binary.LittleEndian.Uint32(data[i:]) * p2
			acc[1] = rotl32(acc[1], 13) * p1
			i += 4
			acc[2] += binary.LittleEndian.Uint32(data[i:]) * p2
			acc[2] = rotl32(acc[2], 13) * p1
			i += 4
			acc[3] += binary.LittleEndian.Uint32(data[i:]) * p2
			acc[3] = rotl32(acc[3], 13) * p1
			i += 4
		}
		hash = rotl32(acc[0], 1) + rotl32(acc[1], 7) + rotl32(acc[2], 12) + rotl32(acc[3], 18)
	} else {
		hash = p5
	}

	hash += uint32(n)

	for i+4 <= n {
		hash += binary.LittleEndian.Uint32(data[i:]) * p3
		hash = rotl32(hash, 17) * p4
		i += 4
	}

	for i <= n {
		var b byte
		if i < n {
			b = data[i]
		}
		hash += uint32(b) * p5
		hash = rotl32(hash, 11) * p1
		i++
	}

	hash ^= hash >> 15
	hash *= p2
	hash ^= hash >> 13
	hash *= p3
	hash ^= hash >> 16

	return hash
}
