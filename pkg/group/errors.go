package group

import "errors"

// ErrMixedDepth is returned by SelectSameDepthChilds when the current
// selection holds members at different depths of the tree.
var ErrMixedDepth = errors.New("selection mixes tree depths")
