package bumpgo

// Response resolves a single collision into a revised goal plus whatever
// further collisions that resolution should be checked against. x/y/w/h is
// always the moving item's rect as it stood at the *start* of the Check
// call that produced col — responses never see a rewritten source rect,
// only a rewritten goal. filter is Check's
// visited-set wrapper, so a re-projection from a response never reconsiders
// an item already resolved earlier in the same Check loop.
type Response[Item comparable] func(world *World[Item], col *Collision[Item], x, y, width, height, goalX, goalY float64, filter FilterFunc[Item]) (gx, gy float64, next []*Collision[Item])

// touchResponse stops the item at the contact point and collects no
// further collisions.
func touchResponse[Item comparable](world *World[Item], col *Collision[Item], x, y, width, height, goalX, goalY float64, filter FilterFunc[Item]) (float64, float64, []*Collision[Item]) {
	return col.Touch.X, col.Touch.Y, nil
}

// crossResponse pretends the collision never slowed the item down: it
// re-projects from the item's original position toward the original goal,
// collecting any further collisions along the same path. Used to let a
// sensor/trigger record that it was crossed without deflecting anything.
func crossResponse[Item comparable](world *World[Item], col *Collision[Item], x, y, width, height, goalX, goalY float64, filter FilterFunc[Item]) (float64, float64, []*Collision[Item]) {
	next := world.Project(col.Item, x, y, width, height, goalX, goalY, filter)
	return goalX, goalY, next
}

// slideResponse cancels the component of the residual movement along the
// contact normal, then re-projects from the touch point toward the
// adjusted goal.
func slideResponse[Item comparable](world *World[Item], col *Collision[Item], x, y, width, height, goalX, goalY float64, filter FilterFunc[Item]) (float64, float64, []*Collision[Item]) {
	tx, ty := col.Touch.X, col.Touch.Y
	if col.Move.X != 0 || col.Move.Y != 0 {
		if col.Normal.X != 0 {
			goalX = tx
		} else {
			goalY = ty
		}
		slide := Point{X: goalX, Y: goalY}
		col.Slide = &slide
	}
	next := world.Project(col.Item, tx, ty, width, height, goalX, goalY, filter)
	return goalX, goalY, next
}

// bounceResponse reflects the residual movement about the contact normal,
// then re-projects from the touch point toward the reflected goal.
func bounceResponse[Item comparable](world *World[Item], col *Collision[Item], x, y, width, height, goalX, goalY float64, filter FilterFunc[Item]) (float64, float64, []*Collision[Item]) {
	tx, ty := col.Touch.X, col.Touch.Y
	if col.Move.X != 0 || col.Move.Y != 0 {
		bx, by := goalX, goalY
		if col.Normal.X == 0 {
			by = ty - (goalY - ty)
		} else {
			bx = tx - (goalX - tx)
		}
		goalX, goalY = bx, by
		bounce := Point{X: goalX, Y: goalY}
		col.Bounce = &bounce
	}
	next := world.Project(col.Item, tx, ty, width, height, goalX, goalY, filter)
	return goalX, goalY, next
}
