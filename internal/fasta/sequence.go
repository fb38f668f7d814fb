package fasta

// Complement returns the complement of a single base, preserving case.
// Anything outside the ACGT alphabet complements to 'N'.
func Complement(base byte) byte {
	switch base {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	case 'a':
		return 't'
	case 't':
		return 'a'
	case 'g':
		return 'c'
	case 'c':
		return 'g'
	default:
		return 'N'
	}
}

// ReverseComplement returns the reverse complement of a DNA sequence as a
// new slice; the input is not modified.
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		result[i] = Complement(seq[n-1-i])
	}
	return result
}
