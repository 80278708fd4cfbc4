// Package calldata encodes contract function calls under the 32-byte-word
// head/tail ABI layout and decomposes the resulting bytes into a labeled
// breakdown of selector, head slots and tail content.
//
// The package can be used to:
//   - Parse declarations such as "transfer(address to, uint256 amount)"
//   - Compute canonical signatures and 4-byte selectors
//   - Encode nested argument trees (records, arrays, strings, bytes)
//   - Walk encoded bytes back apart without access to the original values
//
// # Basic Usage
//
// Parse a signature, supply values and break the call down:
//
//	sig := calldata.MustParseSignature("submit((address to, uint256 amount)[] orders, string memo)")
//
//	values, err := calldata.ParseValues(`[(0x1111111111111111111111111111111111111111, 7)], "hi"`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := calldata.MustCall(sig, values...).Breakdown()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, part := range res.Parts {
//	    fmt.Println(part.Path, part.Kind, part.Value)
//	}
//
// # Layout
//
// Every argument list, at the top level and inside every dynamic value, is
// encoded the same way: a head with one word per static scalar (static
// records and fixed-length arrays inlined) or one offset word per dynamic
// argument, followed by the tail holding dynamic content in declaration order.
// Offsets count from the start of the enclosing list.
//
//   - Integers, bools and addresses are left-padded to 32 bytes.
//   - Fixed-size byte arrays are right-padded.
//   - Strings and bytes carry a length word and right-padded data.
//   - Variable-length arrays carry an element count word.
//
// # Decomposition
//
// Decompose reads the head slots, sorts dynamic content by offset and parses
// each region between consecutive offsets. Leaf parts tile the byte string
// exactly; Regions flattens them for comparison with Encoded.Regions.
// Inconsistent input stops decomposition with ErrCorruptLayout.
//
// # Errors
//
// Parsing fails with ErrMalformedSignature. Encoding fails with
// ErrTypeMismatch, ErrNumericOverflow or ErrInvalidScalar wrapped in an
// *ArgumentError naming the argument. No value is ever coerced.
//
// # References
//
//   - https://docs.soliditylang.org/en/latest/abi-spec.html
package calldata
