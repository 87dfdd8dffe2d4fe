package site

// pageTemplate is the html/template for the sketchbook. Every panel is
// rendered up front; the script only moves them.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>` + cssContent + `</style>
</head>
<body data-total="{{len .Sections}}" data-turn-ms="{{.TurnMS}}" data-wheel="{{.Wheel}}" data-swipe="{{.Swipe}}"{{if .Static}} data-static{{end}}>
  <nav class="navbar{{if not .Nav.Visible}} hidden{{end}}" id="navbar">
    <a href="#" class="brand" data-jump="{{.Nav.Home}}">{{.Nav.Brand}}</a>
    <div class="links">
      {{range .Nav.Links}}<a href="#{{.SectionID}}" data-jump="{{.Index}}" data-label="{{.Label}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
    </div>
  </nav>
  <main class="stack" id="stack">
    {{range $i, $s := .Sections}}
    <section class="page kind-{{$s.Kind}}{{if $s.Dark}} dark{{end}}{{if eq $i 0}} current{{end}}" id="{{$s.ID}}" data-index="{{$i}}">
      <div class="panel">
        {{if $s.Title}}<h1 class="title">{{$s.Title}}</h1>{{end}}
        {{if $s.Subtitle}}<p class="subtitle">{{$s.Subtitle}}</p>{{end}}
        <div class="body">{{$s.HTML}}</div>
        {{if $s.Items}}
        <ul class="items">
          {{range $s.Items}}
          <li>
            {{if .Image}}<img src="{{.Image}}" alt="{{.Label}}" loading="lazy">{{end}}
            <strong>{{.Label}}</strong>{{if .Value}} <span class="value">{{.Value}}</span>{{end}}
            {{if .Detail}}<p>{{.Detail}}</p>{{end}}
          </li>
          {{end}}
        </ul>
        {{end}}
        {{if eq $s.Kind "contact"}}
        <form class="commission" id="commission-form">
          <input name="name" placeholder="Your name" required>
          <input name="email" type="email" placeholder="Email" required>
          <select name="project_type">
            {{range $.Projects}}<option value="{{.}}">{{.}}</option>{{end}}
          </select>
          <label><input name="rush" type="checkbox"> Rush delivery</label>
          <textarea name="message" placeholder="Tell me about your idea"></textarea>
          <button type="submit">Send request</button>
          <p class="form-status" id="form-status"></p>
        </form>
        <ul class="pricing">
          {{range $.Pricing}}<li><span>{{.Label}}</span> <span>{{.Amount}}</span></li>{{end}}
        </ul>
        <a href="#" class="back-to-top" data-jump="0">Back to the first page</a>
        {{end}}
        <div class="folio">{{add $i 1}} / {{len $.Sections}}</div>
      </div>
    </section>
    {{end}}
  </main>
  <script>` + jsContent + `</script>
</body>
</html>`

const cssContent = `
:root { --paper: #f7f1e6; --ink: #2b2621; --accent: #b4532a; --dark: #1d1a17; }
* { box-sizing: border-box; }
html, body { margin: 0; height: 100%; overflow: hidden; background: #d9cfbf; color: var(--ink);
  font-family: Georgia, "Times New Roman", serif; }
.stack { position: fixed; inset: 0; perspective: 1800px; }
.page { position: absolute; inset: 0; display: none; backface-visibility: hidden;
  background: var(--paper); transform-style: preserve-3d; will-change: transform; }
.page.current, .page.incoming { display: block; }
.page.dark { background: var(--dark); color: var(--paper); }
.panel { max-width: 860px; margin: 0 auto; padding: 12vh 2rem 4rem; height: 100%; overflow: auto; }
.title { font-size: 2.6rem; font-weight: normal; margin: 0 0 .5rem; }
.subtitle { font-style: italic; opacity: .75; }
.items { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1.2rem; }
.items img { width: 100%; border-radius: 4px; }
.value { color: var(--accent); }
.folio { position: absolute; bottom: 1.2rem; right: 2rem; font-size: .8rem; opacity: .5; }
.navbar { position: fixed; top: 1rem; left: 50%; transform: translateX(-50%); z-index: 100;
  display: flex; gap: 2rem; align-items: center; padding: .6rem 1.4rem; border-radius: 999px;
  background: rgba(247, 241, 230, .92); box-shadow: 0 4px 18px rgba(0,0,0,.12); transition: opacity .3s; }
.navbar.hidden { opacity: 0; pointer-events: none; }
.navbar a { color: var(--ink); text-decoration: none; }
.navbar .links { display: flex; gap: 1.2rem; }
.navbar a.active { color: var(--accent); }
.brand { font-weight: bold; }
.commission { display: grid; gap: .7rem; max-width: 420px; }
.commission input, .commission select, .commission textarea { font: inherit; padding: .5rem; border: 1px solid #c9bda9; background: #fffaf2; }
.commission textarea { min-height: 6rem; }
.commission button { font: inherit; padding: .6rem; background: var(--ink); color: var(--paper); border: 0; cursor: pointer; }
.pricing { list-style: none; padding: 0; max-width: 420px; }
.back-to-top { display: inline-block; margin-top: 1rem; color: inherit; }
.pricing li { display: flex; justify-content: space-between; border-bottom: 1px dashed #c9bda9; padding: .3rem 0; }
`

// jsContent drives the page from server frames. Without a live socket it
// runs the same turn locally so a static export still flips.
const jsContent = `
(function () {
  var body = document.body;
  var pages = document.querySelectorAll('.page');
  var navbar = document.getElementById('navbar');
  var turnMS = parseInt(body.getAttribute('data-turn-ms'), 10) || 650;
  var wheelDZ = parseFloat(body.getAttribute('data-wheel')) || 20;
  var swipeDZ = parseFloat(body.getAttribute('data-swipe')) || 50;
  var socket = null;
  var touch = null;
  var local = { index: 0, busy: false };

  function place(slot, cls) {
    if (!slot) return;
    var el = pages[slot.page];
    if (!el) return;
    el.classList.add(cls);
    el.style.transformOrigin = slot.origin;
    el.style.transform = 'rotateY(' + slot.rotation_y + 'deg)';
    el.style.zIndex = slot.z_index;
  }

  function applyFrame(f) {
    pages.forEach(function (el) { el.classList.remove('current', 'incoming'); });
    place(f.current, 'current');
    place(f.incoming, 'incoming');
  }

  function applyNav(nav) {
    if (!nav) return;
    navbar.classList.toggle('hidden', !nav.visible);
    navbar.querySelectorAll('[data-label]').forEach(function (a) {
      a.classList.toggle('active', a.getAttribute('data-label') === nav.active);
    });
  }

  function localNav(index) {
    var active = '';
    navbar.querySelectorAll('[data-label]').forEach(function (a) {
      if (parseInt(a.getAttribute('data-jump'), 10) === index) active = a.getAttribute('data-label');
    });
    applyNav({ visible: index > 0, active: active });
  }

  function rest(index) {
    applyFrame({ current: { page: index, rotation_y: 0, origin: 'center center', z_index: 10 } });
    localNav(index);
  }

  function turn(step) {
    var to = local.index + step;
    if (local.busy || to < 0 || to >= pages.length) return;
    local.busy = true;
    var hinge = step > 0 ? '0% center' : '100% center';
    var exit = step > 0 ? -178 : 178;
    var start = performance.now();
    function tick(now) {
      var t = Math.min(1, (now - start) / turnMS);
      var out = exit * t * t * t;
      var inn = -exit * (1 - t) * (1 - t) * (1 - t);
      applyFrame({
        current: { page: local.index, rotation_y: out, origin: hinge, z_index: 10 },
        incoming: { page: to, rotation_y: inn, origin: hinge, z_index: 5 }
      });
      if (t < 1) { requestAnimationFrame(tick); return; }
      local.index = to;
      local.busy = false;
      rest(to);
    }
    requestAnimationFrame(tick);
  }

  function jump(index) {
    if (local.busy || index === local.index || index < 0 || index >= pages.length) return;
    local.index = index;
    rest(index);
  }

  function live() { return socket && socket.readyState === 1; }

  function send(msg) {
    if (live()) { socket.send(JSON.stringify(msg)); return; }
    switch (msg.type) {
      case 'wheel': if (Math.abs(msg.delta_y) > wheelDZ) turn(msg.delta_y > 0 ? 1 : -1); break;
      case 'key': turn(msg.key === 'ArrowDown' ? 1 : -1); break;
      case 'swipe': turn(msg.step); break;
      case 'jump': jump(msg.index); break;
    }
  }

  function connect() {
    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    socket = new WebSocket(proto + location.host + '/ws');
    socket.onmessage = function (e) {
      var m = JSON.parse(e.data);
      if (m.type === 'frame') applyFrame(m.frame);
      else if (m.type === 'state') { local.index = m.state.index; applyNav(m.nav); }
      else if (m.type === 'error') console.warn('sketchbook:', m.error);
    };
    socket.onclose = function () { setTimeout(connect, 1500); };
  }

  window.addEventListener('wheel', function (e) { send({ type: 'wheel', delta_y: e.deltaY }); }, { passive: true });
  window.addEventListener('keydown', function (e) {
    if (e.key === 'ArrowDown' || e.key === 'ArrowUp') send({ type: 'key', key: e.key });
  });
  window.addEventListener('touchstart', function (e) {
    var t = e.touches[0];
    touch = { x: t.clientX, y: t.clientY };
    if (live()) send({ type: 'touch_start', x: touch.x, y: touch.y });
  }, { passive: true });
  window.addEventListener('touchend', function (e) {
    var t = e.changedTouches[0];
    if (!touch) return;
    if (live()) {
      send({ type: 'touch_end', x: t.clientX, y: t.clientY });
    } else {
      var dx = touch.x - t.clientX, dy = touch.y - t.clientY;
      if (Math.abs(dx) > Math.abs(dy) && Math.abs(dx) > swipeDZ) send({ type: 'swipe', step: dx > 0 ? 1 : -1 });
      else if (Math.abs(dy) > Math.abs(dx) && Math.abs(dy) > swipeDZ) send({ type: 'swipe', step: dy < 0 ? 1 : -1 });
    }
    touch = null;
  });
  document.querySelectorAll('[data-jump]').forEach(function (a) {
    a.addEventListener('click', function (e) {
      e.preventDefault();
      send({ type: 'jump', index: parseInt(a.getAttribute('data-jump'), 10) });
    });
  });

  var form = document.getElementById('commission-form');
  if (form) {
    form.addEventListener('submit', function (e) {
      e.preventDefault();
      var data = new FormData(form);
      var payload = {
        name: data.get('name'), email: data.get('email'),
        project_type: data.get('project_type'), message: data.get('message'),
        rush: data.get('rush') === 'on'
      };
      var status = document.getElementById('form-status');
      fetch('/api/commissions', { method: 'POST', headers: { 'Content-Type': 'application/json' }, body: JSON.stringify(payload) })
        .then(function (r) { return r.json().then(function (j) { return { ok: r.ok, body: j }; }); })
        .then(function (res) {
          status.textContent = res.ok ? 'Thank you! I will get back to you soon.' : res.body.error;
          if (res.ok) form.reset();
        })
        .catch(function () { status.textContent = 'Could not send. Please email me instead.'; });
    });
  }

  rest(0);
  if (!body.hasAttribute('data-static')) connect();
})();
`
