package errorx

// OutputErrsMatchInputLength ensures a bulk routine returned one error slot
// per input item. When the lengths diverge, or err is provided, every slot is
// filled with the same error so callers can still attribute a failure to each
// item.
func OutputErrsMatchInputLength(errs []error, inputLength int, err error) ([]error, error) {
	if err == nil {
		if len(errs) == inputLength {
			return errs, nil
		}

		err = InternalErrorf("a different length of errors (%d) then the input length (%d) was returned", len(errs), inputLength)
	}

	out := make([]error, inputLength)
	for i := range out {
		out[i] = err
	}

	return out, err
}
