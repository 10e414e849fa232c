// Package plink reads genotypes from PLINK binary (BED) files in SNP-major
// order. Genotypes are reported as minor-allele dosage, matching the output
// of plink --recodeA, not the raw BED coding.
package plink

const (
	// PackDensity is the number of samples packed into one byte.
	PackDensity = 4

	// HeaderLen is the fixed BED prefix: 2 magic bytes plus 1 mode byte.
	HeaderLen = 3

	// NA is the missing-genotype sentinel, distinct from the valid
	// dosages {0, 1, 2}. Every consumer of decoded genotypes in this
	// module recognizes exactly this value as missing.
	NA = 3
)

// Decode unpacks SNP-major genotype bytes into minor-allele dosages, four
// samples per byte, least-significant bit pair first. out must have room
// for PackDensity*len(in) codes.
//
// Each 2-bit group holds one bit per allele, a set bit meaning the allele
// is absent, so the dosage is the count of zero bits: 00 -> 2 (minor
// homozygous), 10 -> 1 (heterozygous), 11 -> 0 (major homozygous). The
// pattern 01 denotes a missing genotype and maps to NA.
func Decode(out, in []byte) {
	decodeInto(out, in, PackDensity*len(in))
}

// decodeInto stops after n codes, so the trailing pad samples of the last
// byte of a marker never spill past the true sample count.
func decodeInto(out, in []byte, n int) {
	k := 0
	for _, b := range in {
		for s := 0; s < PackDensity; s++ {
			if k == n {
				return
			}
			geno := (b >> uint(2*s)) & 0x03
			if geno == 1 {
				out[k] = NA
			} else {
				a1 := ^geno & 1
				a2 := (^geno >> 1) & 1
				out[k] = a1 + a2
			}
			k++
		}
	}
}

// BytesPerMarker returns the packed byte length of one marker for n samples.
func BytesPerMarker(n int) int {
	return (n + PackDensity - 1) / PackDensity
}
