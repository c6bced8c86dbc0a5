// Package tree implements the regression tree used as the weak learner of a
// second-order gradient boosting procedure.
//
// A tree is trained on a Frame whose trailing columns "g" and "h" hold each
// row's loss gradient and hessian with respect to the current ensemble
// prediction. Every distinct value of every feature is evaluated exactly; the
// split gain is
//
//	Gl²/(Hl+λ) + Gr²/(Hr+λ) - G²/(H+λ)
//
// and every leaf predicts -G/(H+λ) over the rows that reached it.
//
// Example:
//
//	frame, _ := tree.WithGradients(X, []string{"x1", "x2"}, y, pred, tree.LeastSquaresLoss())
//	reg := tree.NewGBTree(tree.WithMaxDepth(3), tree.WithSplitThreshold(0))
//	if err := reg.Fit(frame, y); err != nil {
//		return err
//	}
//	update, _ := reg.Predict(frame)
package tree
