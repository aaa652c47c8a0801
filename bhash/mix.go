package bhash

// RootHash is the fixed hash assigned to every dictionary's root node —
// a large 32-bit prime with a healthy bit mix, per BS_ROOT_HASH.
const RootHash uint32 = 0xace6cabd

// Mix combines a child name's hash with its parent's already-mixed path
// hash into the child's own path hash. len is accepted to match the
// algorithm's signature but, per barser.c's BS_MIX_HASH, does not
// currently participate in the mix.
func Mix(nameHash, parentHash uint32, _ int) uint32 {
	return nameHash ^ rotl32(parentHash, 31)
}

// PathHash computes a node's compound path hash given its own name and
// its parent's path hash.
func PathHash(name []byte, parentHash uint32) uint32 {
	return Mix(Hash32(name), parentHash, len(name))
}
