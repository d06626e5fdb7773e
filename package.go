//
// web service that converts raw examination scores from one
// scheme into a target point allocation.
// each subject's raw score is clipped to its full-mark base,
// rescaled to the points the scheme allots it, and the
// rescaled values are summed into a converted total so that
// results can be compared against a common maximum.
//
package otfconvert
