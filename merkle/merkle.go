// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/canyon-network/canyond/fault"
)

// domain separation so a leaf can never be presented as an inner node
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// EmptyRoot - the root of a tree with no leaves
var EmptyRoot = NewDigest(nil)

// LeafDigest - digest of one leaf record
func LeafDigest(record []byte) Digest {
	return newDigestOf([]byte{leafPrefix}, record)
}

// digest of an inner node
func nodeDigest(left Digest, right Digest) Digest {
	return newDigestOf([]byte{nodePrefix}, left[:], right[:])
}

// compute the full merkle tree from an ordered list of leaf digests
//
// structure is:
//   1. N * leaf digests
//   2. level 1..m digests
//   3. merkle root digest
//
// an odd node at the end of a level is paired with itself
// returns nil for no leaves
func FullMerkleTree(leaves []Digest) []Digest {

	leafCount := len(leaves)
	if 0 == leafCount {
		return nil
	}

	totalLength := 1 // all leaves + space for the final root
	for n := leafCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
	}

	// add initial leaves
	tree := make([]Digest, totalLength)
	copy(tree, leaves)

	n := leafCount
	j := 0
	for workLength := leafCount; workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j // compensate for odd number
			}
			tree[n] = nodeDigest(tree[j], tree[k])
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - the merkle root of an ordered list of leaf digests
func Root(leaves []Digest) Digest {
	if 0 == len(leaves) {
		return EmptyRoot
	}
	tree := FullMerkleTree(leaves)
	return tree[len(tree)-1]
}

// Proof - the sibling digests from leaf[index] up to the root
//
// the first entry is the sibling of the leaf itself
func Proof(leaves []Digest, index int) ([]Digest, error) {
	leafCount := len(leaves)
	if index < 0 || index >= leafCount {
		return nil, fault.InvalidChunkIndex
	}

	tree := FullMerkleTree(leaves)
	proof := make([]Digest, 0, proofLength(leafCount))

	start := 0 // offset of the current level in tree
	for width := leafCount; width > 1; width = (width + 1) / 2 {
		sibling := index ^ 1
		if sibling >= width {
			sibling = index // odd node paired with itself
		}
		proof = append(proof, tree[start+sibling])
		start += width
		index /= 2
	}
	return proof, nil
}

// VerifyProof - check that leaf is entry index of a tree of leafCount
// leaves with the given root
func VerifyProof(root Digest, leaf Digest, index int, leafCount int, proof []Digest) bool {
	if index < 0 || index >= leafCount {
		return false
	}
	if len(proof) != proofLength(leafCount) {
		return false
	}

	d := leaf
	width := leafCount
	for _, sibling := range proof {
		if 0 == index&1 {
			if index+1 >= width && sibling != d {
				return false // odd node must be paired with itself
			}
			d = nodeDigest(d, sibling)
		} else {
			d = nodeDigest(sibling, d)
		}
		index /= 2
		width = (width + 1) / 2
	}
	return d == root
}

// number of levels above the leaves
func proofLength(leafCount int) int {
	n := 0
	for width := leafCount; width > 1; width = (width + 1) / 2 {
		n += 1
	}
	return n
}
