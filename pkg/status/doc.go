/*
Package status reports the progress and outcome of a batch.

	+-------------+
	|  operation  |
	|  (batch)    |
	+------+------+
	       | StartOperation / UpdateProgress / FinishOperation
	+------+------+
	|  Reporter   |
	| (one line)  |
	+-------------+

The progress line is rewritten in place with a carriage return while the
batch runs and terminated with ". Done!" on the last item. When the output
is not a terminal every update gets its own line.
*/
package status
